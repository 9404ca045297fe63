package repository

import (
	"mockera_backend/internal/model"

	"gorm.io/gorm"
)

// UpdateChunkSize 批量更新每个事务包含的行数。块边界不是一致性边界：
// 回填和衰减按自然日幂等，中途失败后整个操作可以安全重跑。
const UpdateChunkSize = 50

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// ListSubmittedByTest 返回某卷全部已提交答卷，供统计聚合使用
func (r *AttemptRepository) ListSubmittedByTest(testID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("test_id = ? AND status = ?", testID, model.AttemptSubmitted).
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByUser(userID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListAll() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Preload("User").
		Order("created_at DESC").
		Find(&attempts).Error
	return attempts, err
}

// ListAllSubmitted 返回全部已提交答卷（按创建时间升序），供回填回放连续天数
func (r *AttemptRepository) ListAllSubmitted() ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.DB.Where("status = ?", model.AttemptSubmitted).
		Order("created_at ASC").
		Find(&attempts).Error
	return attempts, err
}

// DistinctUserIDsByBatch 返回某批次下提交过答卷的用户ID集合
func (r *AttemptRepository) DistinctUserIDsByBatch(batchCode string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Attempt{}).
		Where("batch_code = ? AND status = ?", batchCode, model.AttemptSubmitted).
		Distinct().
		Pluck("user_id", &ids).Error
	return ids, err
}

// CreditUpdate 回填任务对单条答卷的积分修正
type CreditUpdate struct {
	ID                 string
	PerformanceCredits int
	StreakMultiplier   float64
}

// UpdateCreditsChunked 按块提交答卷积分修正，每块一个事务，按主键更新可安全重跑
func (r *AttemptRepository) UpdateCreditsChunked(updates []CreditUpdate) error {
	for start := 0; start < len(updates); start += UpdateChunkSize {
		end := start + UpdateChunkSize
		if end > len(updates) {
			end = len(updates)
		}
		chunk := updates[start:end]
		err := r.DB.Transaction(func(tx *gorm.DB) error {
			for _, u := range chunk {
				if err := tx.Model(&model.Attempt{}).
					Where("id = ?", u.ID).
					Updates(map[string]interface{}{
						"performance_credits": u.PerformanceCredits,
						"streak_multiplier":   u.StreakMultiplier,
					}).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
