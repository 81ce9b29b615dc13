package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/repository"
)

// ProviderService — изменения исполнителей и их фото владельцем.
//
// Каждая операция: subject уже проверен middleware → ищем провайдера →
// сравниваем owner_user_id с subject → пишем. Проверка владельца входит
// в условие самого UPDATE/INSERT/DELETE, поэтому между проверкой и записью
// нет окна. Если условная запись ничего не затронула, провайдер
// перечитывается, чтобы отличить 404 от 403.
type ProviderService struct {
	services  repository.ServiceRepository
	providers repository.ProviderRepository
	photos    repository.PhotoRepository
	audit     *AuditLog

	now   func() time.Time
	newID func() string
}

func NewProviderService(
	services repository.ServiceRepository,
	providers repository.ProviderRepository,
	photos repository.PhotoRepository,
	audit *AuditLog,
) *ProviderService {
	return &ProviderService{
		services:  services,
		providers: providers,
		photos:    photos,
		audit:     audit,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// CreateProvider создаёт исполнителя, владельцем становится subject.
// Услуга должна существовать и принадлежать указанной категории.
func (s *ProviderService) CreateProvider(ctx context.Context, subject string, in CreateProviderInput) (*model.Provider, error) {
	svc, err := s.services.GetByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("serviceId", "serviceId does not exist")
		}
		return nil, fmt.Errorf("load service: %w", err)
	}
	if svc.CategoryID != in.CategoryID {
		return nil, invalid("serviceId", "serviceId does not belong to categoryId")
	}

	owner := subject
	p := &model.Provider{
		ID:          s.newID(),
		CategoryID:  in.CategoryID,
		ServiceID:   in.ServiceID,
		OwnerUserID: &owner,
		Name:        in.Name,
		Description: in.Description,
		Address:     in.Address,
		CreatedAt:   s.now(),
	}
	if err := s.providers.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	zap.L().Info("provider created", zap.String("provider_id", p.ID), zap.String("owner", subject))
	s.audit.Record(ctx, model.EventTypeProviderCreated, subject, &p.ID, map[string]any{
		"name":       p.Name,
		"categoryId": p.CategoryID,
		"serviceId":  p.ServiceID,
	})
	return p, nil
}

// UpdateProvider применяет только присланные поля. Пустой патч — не ошибка:
// после проверки владельца возвращается запись без изменений.
func (s *ProviderService) UpdateProvider(ctx context.Context, subject, id string, in UpdateProviderInput) (*model.Provider, error) {
	updates := in.updates()
	if len(updates) == 0 {
		return s.loadOwned(ctx, id, subject)
	}

	n, err := s.providers.UpdateOwned(ctx, id, subject, updates)
	if err != nil {
		return nil, fmt.Errorf("update provider: %w", err)
	}
	if n == 0 {
		if _, err := s.loadOwned(ctx, id, subject); err != nil {
			return nil, err
		}
	}

	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("reload provider: %w", err)
	}

	fields := make([]string, 0, len(updates))
	for k := range updates {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	s.audit.Record(ctx, model.EventTypeProviderUpdated, subject, &p.ID, map[string]any{"fields": fields})
	return p, nil
}

// ListMyProviders возвращает всех исполнителей subject, без пагинации.
func (s *ProviderService) ListMyProviders(ctx context.Context, subject string) ([]model.Provider, error) {
	list, err := s.providers.ListByOwner(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("list my providers: %w", err)
	}
	return list, nil
}

// AddProviderPhoto добавляет фото в конец (sort_order = max+1, для первого 0)
// и возвращает полный упорядоченный список фото исполнителя.
func (s *ProviderService) AddProviderPhoto(ctx context.Context, subject, providerID string, in AddPhotoInput) ([]model.ProviderPhoto, error) {
	photo := &model.ProviderPhoto{
		ID:         s.newID(),
		ProviderID: providerID,
		URL:        in.URL,
		CreatedAt:  s.now(),
	}
	inserted, err := s.photos.InsertOwned(ctx, photo, subject)
	if err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	if !inserted {
		if _, err := s.loadOwned(ctx, providerID, subject); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("insert photo: provider %s: no row inserted", providerID)
	}

	photos, err := s.photos.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	s.audit.Record(ctx, model.EventTypeProviderPhotoAdded, subject, &providerID, map[string]any{
		"photoId": photo.ID,
		"url":     photo.URL,
	})
	return photos, nil
}

// DeleteProviderPhoto удаляет фото по паре (providerID, photoID).
// Фото другого исполнителя или несуществующее фото: тихий no-op.
func (s *ProviderService) DeleteProviderPhoto(ctx context.Context, subject, providerID, photoID string) error {
	if _, err := s.loadOwned(ctx, providerID, subject); err != nil {
		return err
	}
	n, err := s.photos.DeleteOwned(ctx, providerID, photoID, subject)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if n == 0 {
		zap.L().Debug("photo delete matched nothing",
			zap.String("provider_id", providerID),
			zap.String("photo_id", photoID),
		)
		return nil
	}
	s.audit.Record(ctx, model.EventTypeProviderPhotoDeleted, subject, &providerID, map[string]any{"photoId": photoID})
	return nil
}

// loadOwned: нет записи → ErrProviderNotFound, владелец другой или NULL → ErrForbidden.
func (s *ProviderService) loadOwned(ctx context.Context, id, subject string) (*model.Provider, error) {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("load provider: %w", err)
	}
	if !p.IsOwnedBy(subject) {
		zap.L().Warn("ownership check failed", zap.String("provider_id", id), zap.String("subject", subject))
		return nil, ErrForbidden
	}
	return p, nil
}
