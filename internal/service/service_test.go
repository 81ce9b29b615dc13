package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/repository"
	"github.com/Leganyst/handig/internal/testutil"
)

type testEnv struct {
	db        *gorm.DB
	catalog   *CatalogService
	providers *ProviderService
	profiles  *ProfileService
	audit     *AuditLog
}

// tickingClock отдаёт строго возрастающее время, чтобы порядок по created_at был детерминирован.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewSeededDB(t)

	categories := repository.NewGormCategoryRepository(db)
	services := repository.NewGormServiceRepository(db)
	providers := repository.NewGormProviderRepository(db)
	photos := repository.NewGormPhotoRepository(db)
	profiles := repository.NewGormProfileRepository(db)
	events := repository.NewGormEventRepository(db)

	clock := tickingClock()
	audit := NewAuditLog(events)
	audit.now = clock
	providerSvc := NewProviderService(services, providers, photos, audit)
	providerSvc.now = clock
	profileSvc := NewProfileService(profiles, audit)
	profileSvc.now = clock

	return &testEnv{
		db:        db,
		catalog:   NewCatalogService(categories, services, providers, photos),
		providers: providerSvc,
		profiles:  profileSvc,
		audit:     audit,
	}
}

func strPtr(s string) *string { return &s }

func (e *testEnv) createJoe(t *testing.T, owner string) *model.Provider {
	t.Helper()
	p, err := e.providers.CreateProvider(context.Background(), owner, CreateProviderInput{
		Name:       "Joe's Plumbing",
		CategoryID: "home",
		ServiceID:  "home-plumbers",
	})
	if err != nil {
		t.Fatalf("CreateProvider: %v", err)
	}
	return p
}

func TestCatalogService_ListCategoriesOrdered(t *testing.T) {
	env := newTestEnv(t)

	list, err := env.catalog.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	want := []string{"home", "wellness", "lifestyle"}
	if len(list) != len(want) {
		t.Fatalf("got %d categories, want %d", len(list), len(want))
	}
	for i, c := range list {
		if c.ID != want[i] {
			t.Fatalf("categories[%d] = %s, want %s", i, c.ID, want[i])
		}
	}
}

func TestCatalogService_UnknownCategoryGivesEmptyList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	services, err := env.catalog.ListServicesByCategory(ctx, "unknown-id")
	if err != nil {
		t.Fatalf("ListServicesByCategory: %v", err)
	}
	if services == nil || len(services) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", services)
	}

	providers, err := env.catalog.ListProvidersByCategory(ctx, "unknown-id")
	if err != nil {
		t.Fatalf("ListProvidersByCategory: %v", err)
	}
	if providers == nil || len(providers) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", providers)
	}
}

func TestCatalogService_ListServicesByCategory(t *testing.T) {
	env := newTestEnv(t)

	list, err := env.catalog.ListServicesByCategory(context.Background(), "home")
	if err != nil {
		t.Fatalf("ListServicesByCategory: %v", err)
	}
	if len(list) != 2 || list[0].ID != "home-plumbers" || list[1].ID != "home-boiler" {
		t.Fatalf("unexpected services: %+v", list)
	}
	for _, s := range list {
		if s.CategoryID != "home" {
			t.Fatalf("service %s belongs to %s", s.ID, s.CategoryID)
		}
	}
}

func TestCatalogService_ListProvidersByService(t *testing.T) {
	env := newTestEnv(t)

	list, err := env.catalog.ListProvidersByService(context.Background(), "wellness-sauna")
	if err != nil {
		t.Fatalf("ListProvidersByService: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Nordic Sauna House" {
		t.Fatalf("unexpected providers: %+v", list)
	}
}

func TestCatalogService_NotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.catalog.GetService(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetService err = %v, want ErrNotFound", err)
	}
	if _, err := env.catalog.GetProvider(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetProvider err = %v, want ErrNotFound", err)
	}
	if err := ErrProviderNotFound; err.Error() != "Provider not found" {
		t.Fatalf("message = %q", err.Error())
	}
}

func TestProviderService_CreateSetsOwner(t *testing.T) {
	env := newTestEnv(t)

	p := env.createJoe(t, "u1")
	if p.OwnerUserID == nil || *p.OwnerUserID != "u1" {
		t.Fatalf("owner = %v, want u1", p.OwnerUserID)
	}

	got, err := env.catalog.GetProvider(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("GetProvider: %v", err)
	}
	if got.Name != "Joe's Plumbing" || got.ServiceID != "home-plumbers" {
		t.Fatalf("stored provider mismatch: %+v", got)
	}
}

func TestProviderService_CreateValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		in   CreateProviderInput
	}{
		{"unknown service", CreateProviderInput{Name: "X", CategoryID: "home", ServiceID: "nope"}},
		{"service from another category", CreateProviderInput{Name: "X", CategoryID: "wellness", ServiceID: "home-plumbers"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.providers.CreateProvider(context.Background(), "u1", tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want ValidationError", err)
			}
			if verr.Field != "serviceId" {
				t.Fatalf("field = %q, want serviceId", verr.Field)
			}
		})
	}
}

func TestProviderService_UpdateByOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createJoe(t, "u1")

	got, err := env.providers.UpdateProvider(ctx, "u1", p.ID, UpdateProviderInput{
		Address: strPtr("1 New St"),
	})
	if err != nil {
		t.Fatalf("UpdateProvider: %v", err)
	}
	if got.Address == nil || *got.Address != "1 New St" {
		t.Fatalf("address = %v", got.Address)
	}
	if got.Name != "Joe's Plumbing" {
		t.Fatalf("name changed to %q", got.Name)
	}
}

func TestProviderService_UpdateByStrangerIsForbidden(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createJoe(t, "u1")

	_, err := env.providers.UpdateProvider(ctx, "u2", p.ID, UpdateProviderInput{Name: strPtr("Hacked")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	got, err := env.catalog.GetProvider(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProvider: %v", err)
	}
	if got.Name != "Joe's Plumbing" {
		t.Fatalf("name = %q after forbidden update", got.Name)
	}
}

func TestProviderService_SeedProvidersAreNotOwnerMutable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.providers.UpdateProvider(ctx, "u1", "joes-plumbing", UpdateProviderInput{Name: strPtr("Mine")})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("update err = %v, want ErrForbidden", err)
	}
	_, err = env.providers.AddProviderPhoto(ctx, "u1", "joes-plumbing", AddPhotoInput{URL: "https://x/1.jpg"})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("add photo err = %v, want ErrForbidden", err)
	}
}

func TestProviderService_UpdateUnknownIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.providers.UpdateProvider(context.Background(), "u1", "missing", UpdateProviderInput{Name: strPtr("X")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestProviderService_EmptyPatchReturnsUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createJoe(t, "u1")

	got, err := env.providers.UpdateProvider(ctx, "u1", p.ID, UpdateProviderInput{})
	if err != nil {
		t.Fatalf("UpdateProvider: %v", err)
	}
	if got.Name != p.Name || got.ID != p.ID {
		t.Fatalf("got %+v, want unchanged %+v", got, p)
	}

	if _, err := env.providers.UpdateProvider(ctx, "u2", p.ID, UpdateProviderInput{}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("empty patch by stranger: err = %v, want ErrForbidden", err)
	}
}

func TestProviderService_ListMyProviders(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first := env.createJoe(t, "u1")
	env.createJoe(t, "u2")
	second, err := env.providers.CreateProvider(ctx, "u1", CreateProviderInput{
		Name: "Sauna Two", CategoryID: "wellness", ServiceID: "wellness-sauna",
	})
	if err != nil {
		t.Fatalf("CreateProvider: %v", err)
	}

	mine, err := env.providers.ListMyProviders(ctx, "u1")
	if err != nil {
		t.Fatalf("ListMyProviders: %v", err)
	}
	if len(mine) != 2 || mine[0].ID != first.ID || mine[1].ID != second.ID {
		t.Fatalf("unexpected list: %+v", mine)
	}

	none, err := env.providers.ListMyProviders(ctx, "nobody")
	if err != nil {
		t.Fatalf("ListMyProviders: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("want empty non-nil list, got %#v", none)
	}
}

func TestProviderService_PhotoSortOrderAppends(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createJoe(t, "u1")

	var photos []model.ProviderPhoto
	var err error
	for _, url := range []string{"https://x/a.jpg", "https://x/b.jpg", "https://x/c.jpg"} {
		photos, err = env.providers.AddProviderPhoto(ctx, "u1", p.ID, AddPhotoInput{URL: url})
		if err != nil {
			t.Fatalf("AddProviderPhoto(%s): %v", url, err)
		}
	}
	if len(photos) != 3 {
		t.Fatalf("got %d photos, want 3", len(photos))
	}
	for i, ph := range photos {
		if ph.SortOrder != i {
			t.Fatalf("photos[%d].SortOrder = %d", i, ph.SortOrder)
		}
	}

	// Удаление не перенумеровывает: следующее фото получает max+1.
	if err := env.providers.DeleteProviderPhoto(ctx, "u1", p.ID, photos[1].ID); err != nil {
		t.Fatalf("DeleteProviderPhoto: %v", err)
	}
	photos, err = env.providers.AddProviderPhoto(ctx, "u1", p.ID, AddPhotoInput{URL: "https://x/d.jpg"})
	if err != nil {
		t.Fatalf("AddProviderPhoto: %v", err)
	}
	gotOrders := []int{}
	for _, ph := range photos {
		gotOrders = append(gotOrders, ph.SortOrder)
	}
	want := []int{0, 2, 3}
	if len(gotOrders) != len(want) {
		t.Fatalf("sort orders = %v, want %v", gotOrders, want)
	}
	for i := range want {
		if gotOrders[i] != want[i] {
			t.Fatalf("sort orders = %v, want %v", gotOrders, want)
		}
	}
}

func TestProviderService_PhotoOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createJoe(t, "u1")

	photos, err := env.providers.AddProviderPhoto(ctx, "u1", p.ID, AddPhotoInput{URL: "https://x/a.jpg"})
	if err != nil {
		t.Fatalf("AddProviderPhoto: %v", err)
	}

	if _, err := env.providers.AddProviderPhoto(ctx, "u2", p.ID, AddPhotoInput{URL: "https://x/b.jpg"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("add by stranger: err = %v, want ErrForbidden", err)
	}
	if _, err := env.providers.AddProviderPhoto(ctx, "u1", "missing", AddPhotoInput{URL: "https://x/b.jpg"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("add to missing: err = %v, want ErrNotFound", err)
	}
	if err := env.providers.DeleteProviderPhoto(ctx, "u2", p.ID, photos[0].ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete by stranger: err = %v, want ErrForbidden", err)
	}

	left, err := env.catalog.ListProviderPhotos(ctx, p.ID)
	if err != nil {
		t.Fatalf("ListProviderPhotos: %v", err)
	}
	if len(left) != 1 {
		t.Fatalf("got %d photos, want 1", len(left))
	}
}

func TestProviderService_DeleteForeignPhotoIsNoop(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	mine := env.createJoe(t, "u1")
	other, err := env.providers.CreateProvider(ctx, "u1", CreateProviderInput{
		Name: "Boilers", CategoryID: "home", ServiceID: "home-boiler",
	})
	if err != nil {
		t.Fatalf("CreateProvider: %v", err)
	}
	photos, err := env.providers.AddProviderPhoto(ctx, "u1", other.ID, AddPhotoInput{URL: "https://x/a.jpg"})
	if err != nil {
		t.Fatalf("AddProviderPhoto: %v", err)
	}

	// photoId существует, но у другого исполнителя.
	if err := env.providers.DeleteProviderPhoto(ctx, "u1", mine.ID, photos[0].ID); err != nil {
		t.Fatalf("DeleteProviderPhoto: %v", err)
	}
	left, err := env.catalog.ListProviderPhotos(ctx, other.ID)
	if err != nil {
		t.Fatalf("ListProviderPhotos: %v", err)
	}
	if len(left) != 1 {
		t.Fatalf("foreign photo deleted")
	}
}

func TestProviderService_MutationsAreAudited(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p := env.createJoe(t, "u1")

	if _, err := env.providers.UpdateProvider(ctx, "u1", p.ID, UpdateProviderInput{Name: strPtr("Joe & Sons"), Address: strPtr("2 St")}); err != nil {
		t.Fatalf("UpdateProvider: %v", err)
	}
	if _, err := env.providers.UpdateProvider(ctx, "u2", p.ID, UpdateProviderInput{Name: strPtr("Hacked")}); err == nil {
		t.Fatalf("expected forbidden")
	}

	events, err := env.audit.Activity(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("Activity: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].EventType != model.EventTypeProviderUpdated || events[1].EventType != model.EventTypeProviderCreated {
		t.Fatalf("unexpected event order: %s, %s", events[0].EventType, events[1].EventType)
	}
	if string(events[0].Details) != `{"fields":["address","name"]}` {
		t.Fatalf("details = %s", events[0].Details)
	}

	stranger, err := env.audit.Activity(ctx, "u2", 0)
	if err != nil {
		t.Fatalf("Activity: %v", err)
	}
	if len(stranger) != 0 {
		t.Fatalf("forbidden update was audited: %+v", stranger)
	}
}
