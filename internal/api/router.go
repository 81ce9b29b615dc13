package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Leganyst/handig/internal/auth"
	"github.com/Leganyst/handig/internal/middleware"
	"github.com/Leganyst/handig/internal/obs"
)

// Зависимости HTTP-роутера.
type RouterDeps struct {
	Handler  *Handler
	Verifier auth.Verifier

	Metrics  *obs.Metrics
	Gatherer prometheus.Gatherer

	ServiceName    string
	AllowedOrigins []string
}

// NewRouter собирает gin.Engine: публичное чтение каталога, защищённые
// изменения под RequireAuth, /health и /metrics.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery())
	if d.ServiceName != "" {
		r.Use(otelgin.Middleware(d.ServiceName))
	}
	r.Use(middleware.RequestLogger())
	if d.Metrics != nil {
		r.Use(middleware.Metrics(d.Metrics))
	}
	r.Use(cors.New(corsConfig(d.AllowedOrigins)))

	r.GET("/health", health)
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	h := d.Handler
	requireAuth := middleware.RequireAuth(d.Verifier, d.Metrics)

	api := r.Group("/api")
	api.GET("/health", health)

	api.GET("/categories", h.listCategories)
	api.GET("/categories/:id/services", h.listCategoryServices)
	api.GET("/categories/:id/providers", h.listCategoryProviders)

	api.GET("/services/:id", h.getService)
	api.GET("/services/:id/providers", h.listServiceProviders)

	// Статический /providers/my gin матчит раньше :id.
	api.GET("/providers/my", requireAuth, h.listMyProviders)
	api.GET("/providers/:id", h.getProvider)
	api.GET("/providers/:id/photos", h.listProviderPhotos)
	api.POST("/providers", requireAuth, h.createProvider)
	api.PATCH("/providers/:id", requireAuth, h.updateProvider)
	api.POST("/providers/:id/photos", requireAuth, h.addProviderPhoto)
	api.DELETE("/providers/:id/photos/:photoId", requireAuth, h.deleteProviderPhoto)

	me := api.Group("/me", requireAuth)
	me.GET("", h.getMe)
	me.PATCH("", h.updateMe)
	me.GET("/events", h.listMyEvents)

	return r
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
