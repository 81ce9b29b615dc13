package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Leganyst/handig/internal/model"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	// INSERT ... ON CONFLICT (id) DO NOTHING. true — строка создана этим вызовом.
	InsertIfAbsent(ctx context.Context, profile *model.Profile) (bool, error)
	// INSERT ... ON CONFLICT (id) DO UPDATE только по перечисленным колонкам.
	// При пустом columns существующая строка не меняется.
	Upsert(ctx context.Context, profile *model.Profile, columns []string) error
}

type GormProfileRepository struct {
	db *gorm.DB
}

func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

func (r *GormProfileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProfileRepository) InsertIfAbsent(ctx context.Context, profile *model.Profile) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(profile)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormProfileRepository) Upsert(ctx context.Context, profile *model.Profile, columns []string) error {
	conflict := clause.OnConflict{Columns: []clause.Column{{Name: "id"}}}
	if len(columns) == 0 {
		conflict.DoNothing = true
	} else {
		conflict.DoUpdates = clause.AssignmentColumns(columns)
	}
	return r.db.WithContext(ctx).Clauses(conflict).Create(profile).Error
}
