package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/nexcat/catalog/internal/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// in-memory sqlite exists per connection
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *domain.Category {
	t.Helper()
	cat := &domain.Category{Name: name}
	require.NoError(t, db.Create(cat).Error)
	return cat
}

func TestCategoryRepository_CRUD(t *testing.T) {
	db := testDB(t)
	repo := NewGormCategoryRepository(db, nil)
	ctx := context.Background()

	cat := &domain.Category{Name: "food"}
	require.NoError(t, repo.Add(ctx, cat))
	assert.Positive(t, cat.ID)

	got, err := repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "food", got.Name)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	got.Name = "drinks"
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "drinks", got.Name)

	deleted, err := repo.Delete(ctx, cat.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = repo.GetByID(ctx, cat.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepository_GetByIDAbsent(t *testing.T) {
	db := testDB(t)
	repo := NewGormCategoryRepository(db, nil)

	_, err := repo.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepository_DeleteAbsentIsNoop(t *testing.T) {
	db := testDB(t)
	repo := NewGormCategoryRepository(db, nil)

	deleted, err := repo.Delete(context.Background(), 999)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestProductRepository_CRUD(t *testing.T) {
	db := testDB(t)
	cat := seedCategory(t, db, "hardware")
	repo := NewGormProductRepository(db, nil)
	ctx := context.Background()

	p := &domain.Product{Name: "widget", Price: 9.99, CategoryID: cat.ID}
	require.NoError(t, repo.Add(ctx, p))
	assert.Positive(t, p.ID)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "widget", got.Name)
	assert.Equal(t, 9.99, got.Price)
	assert.Equal(t, cat.ID, got.CategoryID)

	count, err := repo.CountByCategory(ctx, cat.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got.Name = "widget-pro"
	got.Price = 24.5
	require.NoError(t, repo.Update(ctx, got))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "widget-pro", got.Name)
	assert.Equal(t, 24.5, got.Price)

	deleted, err := repo.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductRepository_AddRejectsDanglingCategory(t *testing.T) {
	db := testDB(t)
	repo := NewGormProductRepository(db, nil)

	p := &domain.Product{Name: "orphan", Price: 1, CategoryID: 999}
	err := repo.Add(context.Background(), p)
	require.Error(t, err)
	assert.True(t, IsForeignKeyViolation(err))

	var count int64
	require.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestProductRepository_UpdateVanishedRowIsConflict(t *testing.T) {
	db := testDB(t)
	cat := seedCategory(t, db, "hardware")
	repo := NewGormProductRepository(db, nil)

	p := &domain.Product{ID: 12345, Name: "ghost", Price: 1, CategoryID: cat.ID}
	err := repo.Update(context.Background(), p)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.False(t, IsForeignKeyViolation(nil))
	assert.False(t, IsForeignKeyViolation(ErrNotFound))
}
