package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/handig/internal/model"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	// Вставка без ошибки на конфликт по id/slug (сид).
	CreateIfAbsent(ctx context.Context, category *model.Category) error
}

type GormCategoryRepository struct {
	db *gorm.DB
}

func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	err := r.db.WithContext(ctx).
		Order("sort_order ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) CreateIfAbsent(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(category).Error
}
