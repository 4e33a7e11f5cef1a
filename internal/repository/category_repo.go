package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nexcat/catalog/internal/domain"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for catalog categories
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]domain.Category, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Add(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// GormCategoryRepository is the GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db    *gorm.DB
	tally *rowTally
}

// NewGormCategoryRepository creates a new GORM-based category repository
func NewGormCategoryRepository(db *gorm.DB, tally *rowTally) *GormCategoryRepository {
	return &GormCategoryRepository{db: db, tally: tally}
}

func (r *GormCategoryRepository) GetAll(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) Add(ctx context.Context, category *domain.Category) error {
	res := r.db.WithContext(ctx).Create(category)
	if res.Error != nil {
		return res.Error
	}
	r.tally.add(res.RowsAffected)
	return nil
}

func (r *GormCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	category.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":       category.Name,
			"updated_at": category.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	r.tally.add(res.RowsAffected)
	return nil
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	r.tally.add(res.RowsAffected)
	return true, nil
}
