package model

import "encoding/json"

type AttemptStatus string

const (
	AttemptDraft     AttemptStatus = "DRAFT"
	AttemptSubmitted AttemptStatus = "SUBMITTED"
)

// Attempt 一次完整的答题记录，提交后不再修改（仅离线回填任务会原地重算积分）
// swagger:model Attempt
type Attempt struct {
	UUIDBase
	TestID        string        `gorm:"size:36;index;not null" json:"testId"`
	UserID        string        `gorm:"size:36;index;not null" json:"userId"`
	User          *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CandidateName string        `gorm:"size:100" json:"candidateName,omitempty"`
	BatchCode     string        `gorm:"size:50;index" json:"batchCode,omitempty"`
	Status        AttemptStatus `gorm:"type:enum('DRAFT','SUBMITTED');default:'SUBMITTED';index" json:"status"`

	Answers   StringMap `gorm:"type:json" json:"answers"`
	TimeSpent IntMap    `gorm:"type:json" json:"timeSpent"`
	// 前端采集的行为事件（切屏、改答案次数等），原样存储不做解析
	Events json.RawMessage `gorm:"type:json" json:"events,omitempty"`

	Score              int     `json:"score"`
	Accuracy           float64 `json:"accuracy"`
	TimeTaken          int     `json:"timeTaken"` // 秒
	PerformanceCredits int     `json:"performanceCredits"`
	StreakMultiplier   float64 `gorm:"default:1" json:"streakMultiplier"`
}

func (Attempt) TableName() string {
	return "attempts"
}
