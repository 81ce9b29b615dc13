package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/repository"
)

// ProfileService — профиль пользователя, одна строка на subject.
type ProfileService struct {
	profiles repository.ProfileRepository
	audit    *AuditLog
	now      func() time.Time
}

func NewProfileService(profiles repository.ProfileRepository, audit *AuditLog) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		audit:    audit,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreateProfile возвращает профиль subject, создавая его при первом обращении.
// Вставка идёт через ON CONFLICT DO NOTHING: при гонке двух первых запросов
// второй просто перечитывает уже созданную строку.
func (s *ProfileService) GetOrCreateProfile(ctx context.Context, subject string) (*model.Profile, error) {
	p, err := s.profiles.GetByID(ctx, subject)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	now := s.now()
	created, err := s.profiles.InsertIfAbsent(ctx, &model.Profile{
		ID:          subject,
		AccountType: model.AccountTypeIndividual,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	if created {
		zap.L().Info("profile created", zap.String("subject", subject))
		s.audit.Record(ctx, model.EventTypeProfileCreated, subject, nil, map[string]any{"accountType": model.AccountTypeIndividual})
	}

	p, err = s.profiles.GetByID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	return p, nil
}

// UpsertProfile создаёт профиль из присланных полей (accountType по умолчанию individual)
// или обновляет у существующего только присланные поля и updated_at.
func (s *ProfileService) UpsertProfile(ctx context.Context, subject string, in UpsertProfileInput) (*model.Profile, error) {
	row, columns := in.row(subject)
	now := s.now()
	row.CreatedAt = now
	row.UpdatedAt = now

	if err := s.profiles.Upsert(ctx, row, columns); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	p, err := s.profiles.GetByID(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("reload profile: %w", err)
	}
	s.audit.Record(ctx, model.EventTypeProfileUpdated, subject, nil, map[string]any{"fields": columns})
	return p, nil
}
