package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/handig/internal/model"
)

type ProviderRepository interface {
	GetByID(ctx context.Context, id string) (*model.Provider, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.Provider, error)
	ListByService(ctx context.Context, serviceID string) ([]model.Provider, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]model.Provider, error)
	Create(ctx context.Context, provider *model.Provider) error
	CreateIfAbsent(ctx context.Context, provider *model.Provider) error
	// Обновляет только строку с совпадающим владельцем.
	// Возвращает число затронутых строк: 0 — записи нет или владелец другой.
	UpdateOwned(ctx context.Context, id, ownerUserID string, updates map[string]any) (int64, error)
}

type GormProviderRepository struct {
	db *gorm.DB
}

func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

func (r *GormProviderRepository) GetByID(ctx context.Context, id string) (*model.Provider, error) {
	var p model.Provider
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProviderRepository) ListByCategory(ctx context.Context, categoryID string) ([]model.Provider, error) {
	return r.list(ctx, "category_id = ?", categoryID)
}

func (r *GormProviderRepository) ListByService(ctx context.Context, serviceID string) ([]model.Provider, error) {
	return r.list(ctx, "service_id = ?", serviceID)
}

func (r *GormProviderRepository) ListByOwner(ctx context.Context, ownerUserID string) ([]model.Provider, error) {
	return r.list(ctx, "owner_user_id = ?", ownerUserID)
}

// Стабильный порядок: по времени создания, затем по id.
func (r *GormProviderRepository) list(ctx context.Context, cond string, arg any) ([]model.Provider, error) {
	providers := make([]model.Provider, 0)
	err := r.db.WithContext(ctx).
		Where(cond, arg).
		Order("created_at ASC").
		Order("id ASC").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *GormProviderRepository) Create(ctx context.Context, provider *model.Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

func (r *GormProviderRepository) CreateIfAbsent(ctx context.Context, provider *model.Provider) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(provider).Error
}

func (r *GormProviderRepository) UpdateOwned(ctx context.Context, id, ownerUserID string, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Provider{}).
		Where("id = ? AND owner_user_id = ?", id, ownerUserID).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
