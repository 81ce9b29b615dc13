package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Leganyst/handig/internal/model"
)

type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	ListBySubject(ctx context.Context, subject string, limit int) ([]model.Event, error)
}

type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

func (r *GormEventRepository) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *GormEventRepository) ListBySubject(ctx context.Context, subject string, limit int) ([]model.Event, error) {
	if limit <= 0 {
		limit = 50
	}
	events := make([]model.Event, 0)
	err := r.db.WithContext(ctx).
		Where("subject = ?", subject).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
