package service

import (
	"mockera_backend/internal/model"
	"mockera_backend/internal/repository"
	"mockera_backend/internal/util"
)

// TestService 题库管理：卷子创建后不可修改
type TestService struct {
	Repo *repository.TestRepository
}

func NewTestService(repo *repository.TestRepository) *TestService {
	return &TestService{Repo: repo}
}

type TestQuestionRequest struct {
	Subject        model.Subject      `json:"subject" binding:"required"`
	QuestionType   model.QuestionType `json:"questionType"`
	Difficulty     model.Difficulty   `json:"difficulty"`
	CorrectOption  string             `json:"correctOption"`
	CorrectNumeric string             `json:"correctNumeric"`
	ImageURL       string             `json:"imageUrl"`
	MarksCorrect   int                `json:"marksCorrect"`
	MarksIncorrect int                `json:"marksIncorrect"`
}

type CreateTestRequest struct {
	Title            string                `json:"title" binding:"required"`
	Visibility       model.TestVisibility  `json:"visibility" binding:"omitempty,oneof=Public Private"`
	AccessCode       string                `json:"accessCode"`
	LockNavigation   bool                  `json:"lockNavigation"`
	DurationMinutes  int                   `json:"durationMinutes"`
	MarkingCorrect   int                   `json:"markingCorrect"`
	MarkingIncorrect int                   `json:"markingIncorrect"`
	Questions        []TestQuestionRequest `json:"questions" binding:"required,min=1"`
}

func (s *TestService) CreateTest(creatorID string, req CreateTestRequest) (*model.Test, error) {
	test := buildTest(creatorID, req)
	if err := s.Repo.Create(test); err != nil {
		return nil, err
	}
	return test, nil
}

// buildTest 把创建请求补齐默认值后装配为待落库的卷子
func buildTest(creatorID string, req CreateTestRequest) *model.Test {
	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 180
	}
	if req.MarkingCorrect == 0 {
		req.MarkingCorrect = 4
	}
	if req.MarkingIncorrect == 0 {
		req.MarkingIncorrect = -1
	}
	if req.Visibility == "" {
		req.Visibility = model.VisibilityPublic
	}

	// 访问码只在私有卷上保存
	var accessCode *string
	if req.Visibility == model.VisibilityPrivate && req.AccessCode != "" {
		accessCode = &req.AccessCode
	}

	test := &model.Test{
		Title:            req.Title,
		CreatedBy:        creatorID,
		Visibility:       req.Visibility,
		AccessCode:       accessCode,
		LockNavigation:   req.LockNavigation,
		DurationMinutes:  req.DurationMinutes,
		MarkingCorrect:   req.MarkingCorrect,
		MarkingIncorrect: req.MarkingIncorrect,
	}

	questions := make([]model.Question, len(req.Questions))
	for i, q := range req.Questions {
		questionType := q.QuestionType
		if questionType == "" {
			questionType = model.QuestionMCQ
		}
		difficulty := q.Difficulty
		if difficulty == "" {
			difficulty = model.DifficultyModerate
		}
		questions[i] = model.Question{
			Subject:        q.Subject,
			QuestionType:   questionType,
			Difficulty:     difficulty,
			CorrectOption:  q.CorrectOption,
			CorrectNumeric: q.CorrectNumeric,
			ImageURL:       q.ImageURL,
			Order:          i,
			MarksCorrect:   q.MarksCorrect,
			MarksIncorrect: q.MarksIncorrect,
		}
	}
	test.Questions = questions

	return test
}

// GetTest 返回 viewerID 可见的卷子；私有卷对非创建者表现为不存在
func (s *TestService) GetTest(id, viewerID string) (*model.Test, error) {
	test, err := s.Repo.FindByIDWithQuestions(id)
	if err != nil {
		return nil, err
	}
	if test == nil || !test.VisibleTo(viewerID) {
		return nil, util.ErrTestNotFound
	}
	return test, nil
}

// SetQuestionImage 是卷子创建后唯一允许的修改：补挂题图。
func (s *TestService) SetQuestionImage(questionID, imageURL string) error {
	return s.Repo.UpdateQuestionImage(questionID, imageURL)
}

func (s *TestService) ListTests(viewerID string, page, limit int) ([]model.Test, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Repo.List(viewerID, page, limit)
}
