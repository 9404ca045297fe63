package repository

import (
	"mockera_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) ListBandsByTest(testID string) ([]model.TestPercentileBand, error) {
	var bands []model.TestPercentileBand
	err := r.DB.Where("test_id = ?", testID).
		Order("min_score ASC").
		Find(&bands).Error
	return bands, err
}

// ReplaceBandsForTest 整体替换某卷的百分位分段（删旧插新，单事务）
func (r *AnalyticsRepository) ReplaceBandsForTest(testID string, bands []model.TestPercentileBand) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("test_id = ?", testID).
			Delete(&model.TestPercentileBand{}).Error; err != nil {
			return err
		}
		if len(bands) == 0 {
			return nil
		}
		return tx.Create(&bands).Error
	})
}
