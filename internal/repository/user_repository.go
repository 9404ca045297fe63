package repository

import (
	"errors"
	"mockera_backend/internal/model"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByIDForUpdate 在事务内对用户行加排他锁。
// 同一用户的并发提交必须在此串行化，否则积分/连续天数会丢失更新。
func (r *UserRepository) FindByIDForUpdate(tx *gorm.DB, id string) (*model.User, error) {
	var user model.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindWithSubmittedAttempts 返回至少有一份已提交答卷的用户，按积分降序。
// userIDs 为空时为全局范围，否则限定在给定集合内。
func (r *UserRepository) FindWithSubmittedAttempts(userIDs []string) ([]model.User, error) {
	var users []model.User
	query := r.DB.
		Where("EXISTS (SELECT 1 FROM attempts WHERE attempts.user_id = users.id AND attempts.status = ?)", model.AttemptSubmitted)
	if len(userIDs) > 0 {
		query = query.Where("id IN ?", userIDs)
	}
	err := query.Order("performance_credits DESC").Find(&users).Error
	return users, err
}

// CreditStateUpdate 衰减或回填对单个用户积分状态的修正
type CreditStateUpdate struct {
	ID                 string
	PerformanceCredits int
	StreakDays         *int
	LastAttemptAt      *time.Time
	LastDecayAt        *time.Time
}

// UpdateCreditStateChunked 按块提交用户积分修正，每块一个事务
func (r *UserRepository) UpdateCreditStateChunked(updates []CreditStateUpdate) error {
	for start := 0; start < len(updates); start += UpdateChunkSize {
		end := start + UpdateChunkSize
		if end > len(updates) {
			end = len(updates)
		}
		chunk := updates[start:end]
		err := r.DB.Transaction(func(tx *gorm.DB) error {
			for _, u := range chunk {
				fields := map[string]interface{}{
					"performance_credits": u.PerformanceCredits,
				}
				if u.StreakDays != nil {
					fields["streak_days"] = *u.StreakDays
				}
				if u.LastAttemptAt != nil {
					fields["last_attempt_at"] = *u.LastAttemptAt
				}
				if u.LastDecayAt != nil {
					fields["last_decay_at"] = *u.LastDecayAt
				}
				if err := tx.Model(&model.User{}).
					Where("id = ?", u.ID).
					Updates(fields).Error; err != nil {
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
