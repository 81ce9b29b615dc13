package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/repository"
)

// CatalogService — публичное чтение каталога: категории → услуги → исполнители → фото.
// Авторизация не требуется, кэша нет.
type CatalogService struct {
	categories repository.CategoryRepository
	services   repository.ServiceRepository
	providers  repository.ProviderRepository
	photos     repository.PhotoRepository
}

func NewCatalogService(
	categories repository.CategoryRepository,
	services repository.ServiceRepository,
	providers repository.ProviderRepository,
	photos repository.PhotoRepository,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		services:   services,
		providers:  providers,
		photos:     photos,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	list, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return list, nil
}

// ListServicesByCategory для неизвестной категории возвращает пустой список, не ошибку.
func (s *CatalogService) ListServicesByCategory(ctx context.Context, categoryID string) ([]model.Service, error) {
	list, err := s.services.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list services by category: %w", err)
	}
	return list, nil
}

func (s *CatalogService) ListProvidersByCategory(ctx context.Context, categoryID string) ([]model.Provider, error) {
	list, err := s.providers.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list providers by category: %w", err)
	}
	return list, nil
}

func (s *CatalogService) ListProvidersByService(ctx context.Context, serviceID string) ([]model.Provider, error) {
	list, err := s.providers.ListByService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list providers by service: %w", err)
	}
	return list, nil
}

func (s *CatalogService) GetService(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return svc, nil
}

func (s *CatalogService) GetProvider(ctx context.Context, id string) (*model.Provider, error) {
	p, err := s.providers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (s *CatalogService) ListProviderPhotos(ctx context.Context, providerID string) ([]model.ProviderPhoto, error) {
	list, err := s.photos.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("list provider photos: %w", err)
	}
	return list, nil
}
