package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/handig/internal/model"
)

type ServiceRepository interface {
	GetByID(ctx context.Context, id string) (*model.Service, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.Service, error)
	CreateIfAbsent(ctx context.Context, service *model.Service) error
}

type GormServiceRepository struct {
	db *gorm.DB
}

func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

func (r *GormServiceRepository) GetByID(ctx context.Context, id string) (*model.Service, error) {
	var s model.Service
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormServiceRepository) ListByCategory(ctx context.Context, categoryID string) ([]model.Service, error) {
	services := make([]model.Service, 0)
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&services).Error
	if err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormServiceRepository) CreateIfAbsent(ctx context.Context, service *model.Service) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(service).Error
}
