package service

import (
	"encoding/json"
	"mockera_backend/internal/model"
	"mockera_backend/internal/repository"
	"mockera_backend/internal/util"
	"mockera_backend/pkg/events"
	"mockera_backend/pkg/logger"
	"mockera_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttemptService 提交答卷的编排：判分、聚合统计、积分、连续天数、
// 原子落库。整个流程对外只有一个可观察状态：提交完成。
type AttemptService struct {
	TestRepo    *repository.TestRepository
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
	DB          *gorm.DB
	Publisher   *events.Publisher
	Leaderboard *LeaderboardService
}

func NewAttemptService(testRepo *repository.TestRepository, attemptRepo *repository.AttemptRepository, userRepo *repository.UserRepository, db *gorm.DB, publisher *events.Publisher, leaderboard *LeaderboardService) *AttemptService {
	return &AttemptService{
		TestRepo:    testRepo,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
		DB:          db,
		Publisher:   publisher,
		Leaderboard: leaderboard,
	}
}

type SubmitAttemptRequest struct {
	TestID        string            `json:"testId" binding:"required"`
	CandidateName string            `json:"candidateName"`
	BatchCode     string            `json:"batchCode"`
	Answers       map[string]string `json:"answers"`
	TimeSpent     map[string]int    `json:"timeSpent"`
	// 前端行为事件，原样存储
	Events json.RawMessage `json:"events"`
}

// Submit 对一份新答卷执行完整评分流水线并原子落库。
// 统计聚合必须发生在新答卷入库之前（自排除）；
// 用户行的读改写在事务内加行锁，串行化同一用户的并发提交。
func (s *AttemptService) Submit(userID string, req SubmitAttemptRequest) (*model.Attempt, error) {
	test, err := s.TestRepo.FindByIDWithQuestions(req.TestID)
	if err != nil {
		return nil, err
	}
	if test == nil {
		return nil, util.ErrTestNotFound
	}
	if len(test.Questions) == 0 {
		return nil, util.ErrTestHasNoQuestions
	}

	if req.Answers == nil {
		req.Answers = map[string]string{}
	}
	if req.TimeSpent == nil {
		req.TimeSpent = map[string]int{}
	}

	// 判分
	score := 0
	attempted := 0
	correct := 0
	for i := range test.Questions {
		q := &test.Questions[i]
		selected := req.Answers[q.ID]
		if selected == "" {
			continue
		}
		attempted++
		if IsCorrect(q, selected) {
			score += q.CorrectDelta(test)
			correct++
		} else {
			score += q.IncorrectDelta(test)
		}
	}
	accuracy := 0.0
	if attempted > 0 {
		accuracy = float64(correct) / float64(attempted)
	}
	timeTaken := 0
	for _, seconds := range req.TimeSpent {
		timeTaken += seconds
	}

	// 聚合必须严格先于新答卷入库
	prior, err := s.AttemptRepo.ListSubmittedByTest(test.ID)
	if err != nil {
		return nil, err
	}
	stats := ComputeStats(test, prior)
	baseCredits := BaseCredits(test, stats, req.Answers, req.TimeSpent, accuracy, SpeedBonusGated)

	now := time.Now()
	attempt := &model.Attempt{
		TestID:        test.ID,
		UserID:        userID,
		CandidateName: req.CandidateName,
		BatchCode:     req.BatchCode,
		Status:        model.AttemptSubmitted,
		Answers:       model.StringMap(req.Answers),
		TimeSpent:     model.IntMap(req.TimeSpent),
		Events:        req.Events,
		Score:         score,
		Accuracy:      accuracy,
		TimeTaken:     timeTaken,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.UserRepo.FindByIDForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return util.ErrUserNotFound
		}

		nextStreak := NextStreak(now, user.LastAttemptAt, user.StreakDays)
		multiplier := StreakMultiplier(nextStreak)
		performanceCredits := ApplyMultiplier(baseCredits, multiplier)

		attempt.PerformanceCredits = performanceCredits
		attempt.StreakMultiplier = multiplier
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		return tx.Model(&model.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"performance_credits": user.PerformanceCredits + performanceCredits,
				"streak_days":         nextStreak,
				"last_attempt_at":     now,
				"last_decay_at":       now,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	monitoring.CreditsAwarded.Add(float64(attempt.PerformanceCredits))

	if s.Leaderboard != nil {
		s.Leaderboard.InvalidateCache()
	}

	if pubErr := s.Publisher.Publish("attempt.submitted", map[string]interface{}{
		"attemptId":          attempt.ID,
		"testId":             attempt.TestID,
		"userId":             attempt.UserID,
		"score":              attempt.Score,
		"accuracy":           attempt.Accuracy,
		"performanceCredits": attempt.PerformanceCredits,
		"streakMultiplier":   attempt.StreakMultiplier,
	}); pubErr != nil {
		logger.Log.Warn("failed to publish attempt.submitted event", zap.Error(pubErr))
	}

	return attempt, nil
}

// ListForUser 返回用户自己的答卷；scope 为 global 时返回全部（分析页）
func (s *AttemptService) ListForUser(userID, scope, testID, batchCode string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	var err error
	if scope == "global" {
		attempts, err = s.AttemptRepo.ListAll()
	} else {
		attempts, err = s.AttemptRepo.ListByUser(userID)
	}
	if err != nil {
		return nil, err
	}

	if testID == "" && batchCode == "" {
		return attempts, nil
	}
	filtered := attempts[:0]
	for _, a := range attempts {
		if testID != "" && a.TestID != testID {
			continue
		}
		if batchCode != "" && a.BatchCode != batchCode {
			continue
		}
		filtered = append(filtered, a)
	}
	return filtered, nil
}
