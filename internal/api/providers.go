package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/handig/internal/middleware"
	"github.com/Leganyst/handig/internal/response"
	"github.com/Leganyst/handig/internal/service"
)

// GET /api/providers/my
func (h *Handler) listMyProviders(c *gin.Context) {
	list, err := h.providers.ListMyProviders(c.Request.Context(), middleware.SubjectFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, list)
}

// POST /api/providers
func (h *Handler) createProvider(c *gin.Context) {
	var payload service.CreateProviderPayload
	if !bindJSON(c, &payload) {
		return
	}
	in, err := service.ParseCreateProvider(payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.providers.CreateProvider(c.Request.Context(), middleware.SubjectFrom(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, p)
}

// PATCH /api/providers/:id
func (h *Handler) updateProvider(c *gin.Context) {
	var payload service.UpdateProviderPayload
	if !bindJSON(c, &payload) {
		return
	}
	in, err := service.ParseUpdateProvider(payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.providers.UpdateProvider(c.Request.Context(), middleware.SubjectFrom(c), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// POST /api/providers/:id/photos, отвечает полным списком фото.
func (h *Handler) addProviderPhoto(c *gin.Context) {
	var payload service.AddPhotoPayload
	if !bindJSON(c, &payload) {
		return
	}
	in, err := service.ParseAddPhoto(payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	photos, err := h.providers.AddProviderPhoto(c.Request.Context(), middleware.SubjectFrom(c), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, photos)
}

// DELETE /api/providers/:id/photos/:photoId
func (h *Handler) deleteProviderPhoto(c *gin.Context) {
	err := h.providers.DeleteProviderPhoto(c.Request.Context(), middleware.SubjectFrom(c), c.Param("id"), c.Param("photoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
