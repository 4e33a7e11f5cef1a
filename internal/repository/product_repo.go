package repository

import (
	"context"
	"errors"
	"time"

	"github.com/nexcat/catalog/internal/domain"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for catalog products
type ProductRepository interface {
	// GetAll retrieves every product, store order
	GetAll(ctx context.Context) ([]domain.Product, error)

	// GetByID retrieves a product by ID, ErrNotFound when absent
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Add stages an insert; the generated ID is set on the entity
	Add(ctx context.Context, product *domain.Product) error

	// Update overwrites the full record; ErrConflict when the row
	// changed or vanished since it was read
	Update(ctx context.Context, product *domain.Product) error

	// Delete removes a product by ID in one conditional statement and
	// reports whether a row was affected
	Delete(ctx context.Context, id int64) (bool, error)

	// CountByCategory counts products referencing a category
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db    *gorm.DB
	tally *rowTally
}

// NewGormProductRepository creates a new GORM-based product repository
func NewGormProductRepository(db *gorm.DB, tally *rowTally) *GormProductRepository {
	return &GormProductRepository{db: db, tally: tally}
}

func (r *GormProductRepository) GetAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) Add(ctx context.Context, product *domain.Product) error {
	res := r.db.WithContext(ctx).Create(product)
	if res.Error != nil {
		return res.Error
	}
	r.tally.add(res.RowsAffected)
	return nil
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"category_id": product.CategoryID,
			"updated_at":  product.UpdatedAt,
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

func (r *GormProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	r.tally.add(res.RowsAffected)
	return true, nil
}

func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}
