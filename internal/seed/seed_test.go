package seed_test

import (
	"context"
	"testing"

	"github.com/Leganyst/handig/internal/model"
	"github.com/Leganyst/handig/internal/seed"
	"github.com/Leganyst/handig/internal/testutil"
)

func TestRun_Idempotent(t *testing.T) {
	db := testutil.NewSeededDB(t)

	if err := seed.Run(context.Background(), db); err != nil {
		t.Fatalf("second run: %v", err)
	}

	counts := map[string]struct {
		model any
		want  int64
	}{
		"categories": {&model.Category{}, 3},
		"services":   {&model.Service{}, 5},
		"providers":  {&model.Provider{}, 5},
	}
	for name, c := range counts {
		var got int64
		if err := db.Model(c.model).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if got != c.want {
			t.Fatalf("%s = %d, want %d", name, got, c.want)
		}
	}
}

func TestRun_ProvidersAreSystemOwned(t *testing.T) {
	db := testutil.NewSeededDB(t)

	var providers []model.Provider
	if err := db.Preload("Service").Find(&providers).Error; err != nil {
		t.Fatalf("load providers: %v", err)
	}
	for _, p := range providers {
		if p.OwnerUserID != nil {
			t.Fatalf("%s has owner %q", p.ID, *p.OwnerUserID)
		}
		if p.Service == nil || p.Service.CategoryID != p.CategoryID {
			t.Fatalf("%s: service %s is outside category %s", p.ID, p.ServiceID, p.CategoryID)
		}
	}
}
