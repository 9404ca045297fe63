package service

import (
	"context"
	"encoding/json"
	"mockera_backend/internal/repository"
	"mockera_backend/pkg/logger"
	"mockera_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	leaderboardCacheKey = "leaderboard:global"
	leaderboardCacheTTL = 60 * time.Second
)

// LeaderboardRow 排行榜一行
type LeaderboardRow struct {
	Rank               int        `json:"rank"`
	UserID             string     `json:"userId"`
	Name               string     `json:"name"`
	Image              string     `json:"image,omitempty"`
	PerformanceCredits int        `json:"performanceCredits"`
	RankShieldUntil    *time.Time `json:"rankShieldUntil,omitempty"`
}

// LeaderboardService 排行榜读取编排。衰减在读取路径上惰性执行，
// 因此排行榜读取不是无副作用的：它可能写库。缓存只在衰减落库之后
// 写入，保证缓存永远不会越过当日应扣的衰减。
type LeaderboardService struct {
	UserRepo    *repository.UserRepository
	AttemptRepo *repository.AttemptRepository
	Redis       *redis.Client
}

func NewLeaderboardService(userRepo *repository.UserRepository, attemptRepo *repository.AttemptRepository, rdb *redis.Client) *LeaderboardService {
	return &LeaderboardService{
		UserRepo:    userRepo,
		AttemptRepo: attemptRepo,
		Redis:       rdb,
	}
}

// GetLeaderboard 返回按积分降序的排行。scope 为 "batch" 且给定批次号时
// 只统计该批次下提交过答卷的用户，否则为全局。
// 读取前对每个入榜用户执行当日衰减并批量落库（按块事务），
// 任何余额变化后重新读取再排序。
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, scope, batchCode string) ([]LeaderboardRow, error) {
	useCache := scope != "batch" && s.Redis != nil
	if useCache {
		if rows, ok := s.cachedRows(ctx); ok {
			return rows, nil
		}
	}

	var userIDs []string
	if scope == "batch" && batchCode != "" {
		ids, err := s.AttemptRepo.DistinctUserIDsByBatch(batchCode)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []LeaderboardRow{}, nil
		}
		userIDs = ids
	}

	users, err := s.UserRepo.FindWithSubmittedAttempts(userIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var updates []repository.CreditStateUpdate
	totalDecayed := 0
	for i := range users {
		result := ApplyDecay(now, &users[i])
		if !result.Changed {
			continue
		}
		lastDecayAt := result.NewLastDecayAt
		updates = append(updates, repository.CreditStateUpdate{
			ID:                 users[i].ID,
			PerformanceCredits: result.NewBalance,
			LastDecayAt:        &lastDecayAt,
		})
		totalDecayed += result.Decayed
	}

	if len(updates) > 0 {
		if err := s.UserRepo.UpdateCreditStateChunked(updates); err != nil {
			return nil, err
		}
		monitoring.CreditsDecayed.Add(float64(totalDecayed))

		users, err = s.UserRepo.FindWithSubmittedAttempts(userIDs)
		if err != nil {
			return nil, err
		}
	}

	rows := make([]LeaderboardRow, len(users))
	for i, u := range users {
		rows[i] = LeaderboardRow{
			Rank:               i + 1,
			UserID:             u.ID,
			Name:               u.Name,
			Image:              u.Image,
			PerformanceCredits: u.PerformanceCredits,
			RankShieldUntil:    u.RankShieldUntil,
		}
	}

	if useCache {
		s.cacheRows(ctx, rows, now)
	}
	return rows, nil
}

func (s *LeaderboardService) cachedRows(ctx context.Context) ([]LeaderboardRow, bool) {
	data, err := s.Redis.Get(ctx, leaderboardCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var rows []LeaderboardRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false
	}
	return rows, true
}

func (s *LeaderboardService) cacheRows(ctx context.Context, rows []LeaderboardRow, now time.Time) {
	data, err := json.Marshal(rows)
	if err != nil {
		return
	}
	// TTL 不跨过本地午夜，第二天的首次读取必须回源触发当日衰减
	ttl := leaderboardCacheTTL
	untilMidnight := dayStart(now).Add(24 * time.Hour).Sub(now)
	if untilMidnight > 0 && untilMidnight < ttl {
		ttl = untilMidnight
	}
	if err := s.Redis.Set(ctx, leaderboardCacheKey, data, ttl).Err(); err != nil {
		logger.Log.Warn("failed to cache leaderboard", zap.Error(err))
	}
}

// InvalidateCache 任何积分写入（提交答卷、购买护盾）后清除缓存
func (s *LeaderboardService) InvalidateCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), leaderboardCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate leaderboard cache", zap.Error(err))
	}
}
