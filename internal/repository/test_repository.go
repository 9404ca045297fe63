package repository

import (
	"errors"
	"mockera_backend/internal/model"

	"gorm.io/gorm"
)

type TestRepository struct {
	DB *gorm.DB
}

func NewTestRepository(db *gorm.DB) *TestRepository {
	return &TestRepository{DB: db}
}

// Create 在一个事务内创建卷子与其题目
func (r *TestRepository) Create(test *model.Test) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(test).Error
	})
}

// FindByIDWithQuestions 返回卷子及按展示顺序排列的题目，不存在时返回 nil
func (r *TestRepository) FindByIDWithQuestions(id string) (*model.Test, error) {
	var test model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC")
	}).First(&test, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &test, nil
}

// List 分页返回 viewerID 可见的卷子：公开卷加上其本人创建的私有卷
func (r *TestRepository) List(viewerID string, page, limit int) ([]model.Test, int64, error) {
	var tests []model.Test
	var total int64

	query := r.DB.Model(&model.Test{}).
		Where("visibility = ? OR created_by = ?", model.VisibilityPublic, viewerID)
	query.Count(&total)

	offset := (page - 1) * limit
	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&tests).Error
	return tests, total, err
}

func (r *TestRepository) CountByCreator(userID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Test{}).Where("created_by = ?", userID).Count(&total).Error
	return total, err
}

// ListByIDsWithQuestions 按 ID 集合批量取卷子及题目，供个人统计聚合使用
func (r *TestRepository) ListByIDsWithQuestions(ids []string) ([]model.Test, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tests []model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC")
	}).Where("id IN ?", ids).Find(&tests).Error
	return tests, err
}

// ListAllWithQuestions 返回全部卷子及题目，供离线回填使用
func (r *TestRepository) ListAllWithQuestions() ([]model.Test, error) {
	var tests []model.Test
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC")
	}).Find(&tests).Error
	return tests, err
}

func (r *TestRepository) UpdateQuestionImage(questionID, imageURL string) error {
	return r.DB.Model(&model.Question{}).
		Where("id = ?", questionID).
		Update("image_url", imageURL).
		Error
}
