package service

import (
	"mockera_backend/internal/model"
	"mockera_backend/internal/repository"
	"mockera_backend/pkg/logger"
	"sort"
	"time"

	"go.uber.org/zap"
)

// BackfillService 离线全量重算：从零重新推导每份答卷的积分与倍率、
// 每个用户的总积分与连续天数。与线上路径使用同一套公式和自排除规则，
// 按自然日幂等，可安全重跑。
type BackfillService struct {
	TestRepo    *repository.TestRepository
	AttemptRepo *repository.AttemptRepository
	UserRepo    *repository.UserRepository
	Leaderboard *LeaderboardService
}

func NewBackfillService(testRepo *repository.TestRepository, attemptRepo *repository.AttemptRepository, userRepo *repository.UserRepository, leaderboard *LeaderboardService) *BackfillService {
	return &BackfillService{
		TestRepo:    testRepo,
		AttemptRepo: attemptRepo,
		UserRepo:    userRepo,
		Leaderboard: leaderboard,
	}
}

type BackfillResult struct {
	AttemptsUpdated int `json:"attemptsUpdated"`
	UsersUpdated    int `json:"usersUpdated"`
}

// Run 执行全量回填。policy 默认应传 SpeedBonusUngated（历史口径）；
// 如需与线上提交路径完全对齐则传 SpeedBonusGated。
func (s *BackfillService) Run(policy SpeedBonusPolicy) (*BackfillResult, error) {
	tests, err := s.TestRepo.ListAllWithQuestions()
	if err != nil {
		return nil, err
	}
	attempts, err := s.AttemptRepo.ListAllSubmitted()
	if err != nil {
		return nil, err
	}

	testByID := make(map[string]*model.Test, len(tests))
	for i := range tests {
		testByID[tests[i].ID] = &tests[i]
	}

	attemptsByTest := make(map[string][]model.Attempt)
	for _, a := range attempts {
		attemptsByTest[a.TestID] = append(attemptsByTest[a.TestID], a)
	}

	// 每卷先做全量聚合，评分时再扣掉答卷自身贡献，恢复自排除语义
	fullStats := make(map[string]TestStats, len(tests))
	for i := range tests {
		test := &tests[i]
		fullStats[test.ID] = ComputeStats(test, attemptsByTest[test.ID])
	}

	baseByAttempt := make(map[string]int, len(attempts))
	for i := range attempts {
		attempt := &attempts[i]
		test := testByID[attempt.TestID]
		if test == nil {
			continue
		}
		stats := fullStats[test.ID].SubtractAttempt(test, attempt)

		attempted := 0
		correct := 0
		for j := range test.Questions {
			q := &test.Questions[j]
			selected := attempt.Answers[q.ID]
			if selected == "" {
				continue
			}
			attempted++
			if IsCorrect(q, selected) {
				correct++
			}
		}
		overallAccuracy := 0.0
		if attempted > 0 {
			overallAccuracy = float64(correct) / float64(attempted)
		}

		baseByAttempt[attempt.ID] = BaseCredits(test, stats,
			attempt.Answers, attempt.TimeSpent, overallAccuracy, policy)
	}

	attemptsByUser := make(map[string][]model.Attempt)
	for _, a := range attempts {
		attemptsByUser[a.UserID] = append(attemptsByUser[a.UserID], a)
	}

	var attemptUpdates []repository.CreditUpdate
	var userUpdates []repository.CreditStateUpdate

	for userID, userAttempts := range attemptsByUser {
		sort.Slice(userAttempts, func(i, j int) bool {
			return userAttempts[i].CreatedAt.Before(userAttempts[j].CreatedAt)
		})

		streakDays := 0
		var lastAt *time.Time
		totalCredits := 0

		for i := range userAttempts {
			attempt := &userAttempts[i]
			streakDays = NextStreak(attempt.CreatedAt, lastAt, streakDays)
			createdAt := attempt.CreatedAt
			lastAt = &createdAt

			multiplier := StreakMultiplier(streakDays)
			performanceCredits := ApplyMultiplier(baseByAttempt[attempt.ID], multiplier)
			totalCredits += performanceCredits

			attemptUpdates = append(attemptUpdates, repository.CreditUpdate{
				ID:                 attempt.ID,
				PerformanceCredits: performanceCredits,
				StreakMultiplier:   multiplier,
			})
		}

		if lastAt != nil {
			days := streakDays
			userUpdates = append(userUpdates, repository.CreditStateUpdate{
				ID:                 userID,
				PerformanceCredits: totalCredits,
				StreakDays:         &days,
				LastAttemptAt:      lastAt,
				LastDecayAt:        lastAt,
			})
		}
	}

	if err := s.AttemptRepo.UpdateCreditsChunked(attemptUpdates); err != nil {
		return nil, err
	}
	if err := s.UserRepo.UpdateCreditStateChunked(userUpdates); err != nil {
		return nil, err
	}

	// 余额全部重写后，缓存的榜单已经过期
	if s.Leaderboard != nil {
		s.Leaderboard.InvalidateCache()
	}

	logger.Log.Info("credit backfill completed",
		zap.Int("attempts", len(attemptUpdates)),
		zap.Int("users", len(userUpdates)))

	return &BackfillResult{
		AttemptsUpdated: len(attemptUpdates),
		UsersUpdated:    len(userUpdates),
	}, nil
}
