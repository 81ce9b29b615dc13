package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Leganyst/handig/internal/model"
)

type PhotoRepository interface {
	ListByProvider(ctx context.Context, providerID string) ([]model.ProviderPhoto, error)
	// Вставляет фото с sort_order = max+1 одним запросом, если провайдер принадлежит ownerUserID.
	// false — вставки не было (провайдера нет или владелец другой).
	InsertOwned(ctx context.Context, photo *model.ProviderPhoto, ownerUserID string) (bool, error)
	// Удаляет фото по паре (providerID, photoID) при совпадении владельца провайдера.
	DeleteOwned(ctx context.Context, providerID, photoID, ownerUserID string) (int64, error)
}

type GormPhotoRepository struct {
	db *gorm.DB
}

func NewGormPhotoRepository(db *gorm.DB) *GormPhotoRepository {
	return &GormPhotoRepository{db: db}
}

func (r *GormPhotoRepository) ListByProvider(ctx context.Context, providerID string) ([]model.ProviderPhoto, error) {
	photos := make([]model.ProviderPhoto, 0)
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("sort_order ASC").
		Order("created_at ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

const insertOwnedPhotoSQL = `INSERT INTO provider_photos (id, provider_id, url, sort_order, created_at)
SELECT ?, ?, ?, COALESCE((SELECT MAX(pp.sort_order) FROM provider_photos pp WHERE pp.provider_id = ?), -1) + 1, ?
WHERE EXISTS (SELECT 1 FROM providers p WHERE p.id = ? AND p.owner_user_id = ?)`

// Параллельные вставки могут посчитать одинаковый max+1; уникальный индекс
// (provider_id, sort_order) отбивает вторую, и она пересчитывает порядок.
const insertPhotoAttempts = 3

func (r *GormPhotoRepository) InsertOwned(ctx context.Context, photo *model.ProviderPhoto, ownerUserID string) (bool, error) {
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = r.db.NowFunc()
	}
	for attempt := 1; ; attempt++ {
		res := r.db.WithContext(ctx).Exec(insertOwnedPhotoSQL,
			photo.ID, photo.ProviderID, photo.URL,
			photo.ProviderID,
			photo.CreatedAt,
			photo.ProviderID, ownerUserID,
		)
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) && attempt < insertPhotoAttempts {
			continue
		}
		if res.Error != nil {
			return false, res.Error
		}
		return res.RowsAffected > 0, nil
	}
}

func (r *GormPhotoRepository) DeleteOwned(ctx context.Context, providerID, photoID, ownerUserID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", photoID, providerID).
		Where("EXISTS (SELECT 1 FROM providers p WHERE p.id = ? AND p.owner_user_id = ?)", providerID, ownerUserID).
		Delete(&model.ProviderPhoto{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
