package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/handig/internal/response"
)

// GET /api/categories
func (h *Handler) listCategories(c *gin.Context) {
	list, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// GET /api/categories/:id/services
func (h *Handler) listCategoryServices(c *gin.Context) {
	list, err := h.catalog.ListServicesByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// GET /api/categories/:id/providers
func (h *Handler) listCategoryProviders(c *gin.Context) {
	list, err := h.catalog.ListProvidersByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// GET /api/services/:id
func (h *Handler) getService(c *gin.Context) {
	svc, err := h.catalog.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, svc)
}

// GET /api/services/:id/providers
func (h *Handler) listServiceProviders(c *gin.Context) {
	list, err := h.catalog.ListProvidersByService(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// GET /api/providers/:id
func (h *Handler) getProvider(c *gin.Context) {
	p, err := h.catalog.GetProvider(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// GET /api/providers/:id/photos
func (h *Handler) listProviderPhotos(c *gin.Context) {
	list, err := h.catalog.ListProviderPhotos(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}
