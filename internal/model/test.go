package model

type Subject string

const (
	SubjectPhysics   Subject = "Physics"
	SubjectChemistry Subject = "Chemistry"
	SubjectMaths     Subject = "Maths"
)

type QuestionType string

const (
	// 单选题（默认）
	QuestionMCQ QuestionType = "MCQ"
	// 多选题，答案为逗号拼接的选项集合
	QuestionMSQ QuestionType = "MSQ"
	// 数值题，按去除首尾空白后的字符串精确比较
	QuestionNUM QuestionType = "NUM"
)

type Difficulty string

const (
	DifficultyEasy     Difficulty = "Easy"
	DifficultyModerate Difficulty = "Moderate"
	DifficultyTough    Difficulty = "Tough"
)

type TestVisibility string

const (
	VisibilityPublic  TestVisibility = "Public"
	VisibilityPrivate TestVisibility = "Private"
)

// Test 一份卷子，创建后不可修改
// swagger:model Test
type Test struct {
	UUIDBase
	Title            string         `gorm:"size:255;not null" json:"title"`
	CreatedBy        string         `gorm:"size:36;index" json:"createdBy"`
	Visibility       TestVisibility `gorm:"type:enum('Public','Private');default:'Public'" json:"visibility"`
	// 仅私有卷保存访问码，公开卷恒为空
	AccessCode       *string    `gorm:"size:50" json:"accessCode,omitempty"`
	LockNavigation   bool       `gorm:"default:false" json:"lockNavigation"`
	DurationMinutes  int        `gorm:"default:180" json:"durationMinutes"`
	MarkingCorrect   int        `gorm:"default:4" json:"markingCorrect"`
	MarkingIncorrect int        `gorm:"default:-1" json:"markingIncorrect"`
	Questions        []Question `gorm:"foreignKey:TestID" json:"questions,omitempty"`
}

func (Test) TableName() string {
	return "tests"
}

// VisibleTo 公开卷对所有人可见，私有卷仅创建者可见
func (t *Test) VisibleTo(userID string) bool {
	return t.Visibility == VisibilityPublic || t.CreatedBy == userID
}

// Question 题目，展示顺序按 Order 排列
// swagger:model Question
type Question struct {
	UUIDBase
	TestID         string       `gorm:"size:36;index;not null" json:"testId"`
	Subject        Subject      `gorm:"type:enum('Physics','Chemistry','Maths');not null" json:"subject"`
	QuestionType   QuestionType `gorm:"type:enum('MCQ','MSQ','NUM');default:'MCQ'" json:"questionType"`
	Difficulty     Difficulty   `gorm:"type:enum('Easy','Moderate','Tough');default:'Moderate'" json:"difficulty"`
	CorrectOption  string       `gorm:"size:50" json:"correctOption"`  // MCQ 单字母；MSQ 逗号拼接
	CorrectNumeric string       `gorm:"size:50" json:"correctNumeric"` // NUM 题的标准答案
	ImageURL       string       `gorm:"size:500" json:"imageUrl"`      // 从原始试卷裁剪出的题目截图
	Order          int          `gorm:"default:0" json:"order"`
	// 单题分值覆盖，0 表示继承卷面统一计分
	MarksCorrect   int `gorm:"default:0" json:"marksCorrect"`
	MarksIncorrect int `gorm:"default:0" json:"marksIncorrect"`
}

func (Question) TableName() string {
	return "questions"
}

// CorrectDelta 返回该题答对的得分增量
func (q *Question) CorrectDelta(t *Test) int {
	if q.MarksCorrect != 0 {
		return q.MarksCorrect
	}
	return t.MarkingCorrect
}

// IncorrectDelta 返回该题答错的得分增量（通常为负）
func (q *Question) IncorrectDelta(t *Test) int {
	if q.MarksIncorrect != 0 {
		return q.MarksIncorrect
	}
	return t.MarkingIncorrect
}
