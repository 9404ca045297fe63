package service

import (
	"mockera_backend/internal/model"
	"mockera_backend/internal/repository"
)

// AnalyticsService 百分位分段：管理员维护分数段到估算百分位标签的映射
type AnalyticsService struct {
	Repo *repository.AnalyticsRepository
}

func NewAnalyticsService(repo *repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{Repo: repo}
}

func (s *AnalyticsService) GetPercentileBands(testID string) ([]model.TestPercentileBand, error) {
	return s.Repo.ListBandsByTest(testID)
}

type PercentileBandRequest struct {
	MinScore        int    `json:"minScore"`
	MaxScore        *int   `json:"maxScore"`
	PercentileLabel string `json:"percentileLabel" binding:"required"`
}

// ReplacePercentileBands 整体替换某卷的分段配置
func (s *AnalyticsService) ReplacePercentileBands(testID string, reqs []PercentileBandRequest) ([]model.TestPercentileBand, error) {
	bands := make([]model.TestPercentileBand, len(reqs))
	for i, req := range reqs {
		bands[i] = model.TestPercentileBand{
			TestID:          testID,
			MinScore:        req.MinScore,
			MaxScore:        req.MaxScore,
			PercentileLabel: req.PercentileLabel,
		}
	}
	if err := s.Repo.ReplaceBandsForTest(testID, bands); err != nil {
		return nil, err
	}
	return s.Repo.ListBandsByTest(testID)
}
