package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/repository"
)

func ptr[T any](v T) *T { return &v }

// Демо-каталог. id совпадают со slug, поэтому повторный запуск ничего не дублирует.
var categories = []model.Category{
	{ID: "home", Name: "Home", Slug: "home", Description: ptr("Plumbers, boiler service, repairs & more"), Icon: ptr("home"), SortOrder: 0},
	{ID: "wellness", Name: "Wellness", Slug: "wellness", Description: ptr("Spa, sauna, massage & wellness"), Icon: ptr("spa"), SortOrder: 1},
	{ID: "lifestyle", Name: "Lifestyle", Slug: "lifestyle", Description: ptr("Haircut, beauty, personal care"), Icon: ptr("lifestyle"), SortOrder: 2},
}

var services = []model.Service{
	{ID: "home-plumbers", CategoryID: "home", Name: "Plumbers", Slug: "home-plumbers", Description: ptr("Leaks, pipes and bathroom installs"), SortOrder: 0},
	{ID: "home-boiler", CategoryID: "home", Name: "Boiler service", Slug: "home-boiler", Description: ptr("Boiler repair, maintenance and installation"), SortOrder: 1},
	{ID: "wellness-spa", CategoryID: "wellness", Name: "Spa", Slug: "wellness-spa", Description: ptr("Massage, facials and relaxation"), SortOrder: 0},
	{ID: "wellness-sauna", CategoryID: "wellness", Name: "Sauna", Slug: "wellness-sauna", Description: ptr("Finnish and infrared saunas"), SortOrder: 1},
	{ID: "lifestyle-hair", CategoryID: "lifestyle", Name: "Hair", Slug: "lifestyle-hair", Description: ptr("Haircuts, styling and barbers"), SortOrder: 0},
}

// Исполнители из сида без владельца: через API их менять нельзя.
var providers = []model.Provider{
	{ID: "quickfix-boiler-service", CategoryID: "home", ServiceID: "home-boiler", Name: "QuickFix Boiler Service", Description: ptr("24/7 boiler repair and installation."), Address: ptr("123 Main St"), Rating: ptr(4.8)},
	{ID: "joes-plumbing", CategoryID: "home", ServiceID: "home-plumbers", Name: "Joe's Plumbing", Description: ptr("Residential and commercial plumbing."), Address: ptr("456 Oak Ave"), Rating: ptr(4.6)},
	{ID: "serenity-spa", CategoryID: "wellness", ServiceID: "wellness-spa", Name: "Serenity Spa", Description: ptr("Massage, facials, and relaxation."), Address: ptr("789 Wellness Blvd"), Rating: ptr(4.9)},
	{ID: "nordic-sauna-house", CategoryID: "wellness", ServiceID: "wellness-sauna", Name: "Nordic Sauna House", Description: ptr("Traditional Finnish sauna experience."), Address: ptr("321 Pine Rd"), Rating: ptr(4.7)},
	{ID: "style-studio", CategoryID: "lifestyle", ServiceID: "lifestyle-hair", Name: "Style Studio", Description: ptr("Haircuts, styling, and barber services."), Address: ptr("555 Style Lane"), Rating: ptr(4.5)},
}

// Run заливает демо-каталог одной транзакцией. Существующие строки не трогаются.
func Run(ctx context.Context, db *gorm.DB) error {
	now := db.NowFunc()
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryRepo := repository.NewGormCategoryRepository(tx)
		serviceRepo := repository.NewGormServiceRepository(tx)
		providerRepo := repository.NewGormProviderRepository(tx)

		for i := range categories {
			c := categories[i]
			c.CreatedAt = now
			if err := categoryRepo.CreateIfAbsent(ctx, &c); err != nil {
				return fmt.Errorf("category %s: %w", c.Slug, err)
			}
		}
		for i := range services {
			s := services[i]
			s.CreatedAt = now
			if err := serviceRepo.CreateIfAbsent(ctx, &s); err != nil {
				return fmt.Errorf("service %s: %w", s.Slug, err)
			}
		}
		for i := range providers {
			p := providers[i]
			// Разносим created_at, чтобы порядок в выдаче совпадал с порядком в сиде.
			p.CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
			if err := providerRepo.CreateIfAbsent(ctx, &p); err != nil {
				return fmt.Errorf("provider %s: %w", p.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	zap.L().Info("seed complete",
		zap.Int("categories", len(categories)),
		zap.Int("services", len(services)),
		zap.Int("providers", len(providers)),
	)
	return nil
}
