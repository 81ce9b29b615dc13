package api

import (
	"github.com/Leganyst/handig/internal/service"
)

// Handler держит сервисы, нужные HTTP-обработчикам.
type Handler struct {
	catalog   *service.CatalogService
	providers *service.ProviderService
	profiles  *service.ProfileService
	audit     *service.AuditLog
}

func NewHandler(
	catalog *service.CatalogService,
	providers *service.ProviderService,
	profiles *service.ProfileService,
	audit *service.AuditLog,
) *Handler {
	return &Handler{
		catalog:   catalog,
		providers: providers,
		profiles:  profiles,
		audit:     audit,
	}
}
