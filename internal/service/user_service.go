package service

import (
	"mockera_backend/internal/model"
	"mockera_backend/internal/repository"
	"mockera_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

const (
	// 护盾售价（积分）
	rankShieldCost = 200
	// 护盾时长，自购买时刻起算
	rankShieldDuration = 24 * time.Hour
)

// UserService 处理用户积分状态的查询与护盾购买
type UserService struct {
	UserRepo    *repository.UserRepository
	AttemptRepo *repository.AttemptRepository
	TestRepo    *repository.TestRepository
	DB          *gorm.DB
	Leaderboard *LeaderboardService
}

func NewUserService(userRepo *repository.UserRepository, attemptRepo *repository.AttemptRepository, testRepo *repository.TestRepository, db *gorm.DB, leaderboard *LeaderboardService) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		AttemptRepo: attemptRepo,
		TestRepo:    testRepo,
		DB:          db,
		Leaderboard: leaderboard,
	}
}

// Profile 个人页载荷：积分状态加答题聚合
type Profile struct {
	User  *model.User  `json:"user"`
	Stats ProfileStats `json:"stats"`
}

func (s *UserService) GetProfile(userID string) (*Profile, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.ErrUserNotFound
	}

	attempts, err := s.AttemptRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	testIDs := make([]string, 0, len(attempts))
	seen := make(map[string]bool, len(attempts))
	for i := range attempts {
		if !seen[attempts[i].TestID] {
			seen[attempts[i].TestID] = true
			testIDs = append(testIDs, attempts[i].TestID)
		}
	}
	tests, err := s.TestRepo.ListByIDsWithQuestions(testIDs)
	if err != nil {
		return nil, err
	}
	testsByID := make(map[string]*model.Test, len(tests))
	for i := range tests {
		testsByID[tests[i].ID] = &tests[i]
	}

	stats := ComputeProfileStats(attempts, testsByID)

	created, err := s.TestRepo.CountByCreator(userID)
	if err != nil {
		return nil, err
	}
	stats.TestsCreated = int(created)

	return &Profile{User: user, Stats: stats}, nil
}

// PurchaseRankShield 扣 200 积分，授予自此刻起 24 小时的衰减豁免。
// 新护盾覆盖旧护盾，不叠加。余额不足时返回 ErrInsufficientCredits。
func (s *UserService) PurchaseRankShield(userID string) (*model.User, error) {
	var updated *model.User
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		user, err := s.UserRepo.FindByIDForUpdate(tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return util.ErrUserNotFound
		}
		if user.PerformanceCredits < rankShieldCost {
			return util.ErrInsufficientCredits
		}

		shieldUntil := time.Now().Add(rankShieldDuration)
		if err := tx.Model(&model.User{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"performance_credits": user.PerformanceCredits - rankShieldCost,
				"rank_shield_until":   shieldUntil,
			}).Error; err != nil {
			return err
		}

		user.PerformanceCredits -= rankShieldCost
		user.RankShieldUntil = &shieldUntil
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Leaderboard != nil {
		s.Leaderboard.InvalidateCache()
	}
	return updated, nil
}
