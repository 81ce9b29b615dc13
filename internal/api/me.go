package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/handig/internal/middleware"
	"github.com/Leganyst/handig/internal/response"
	"github.com/Leganyst/handig/internal/service"
)

// GET /api/me
func (h *Handler) getMe(c *gin.Context) {
	p, err := h.profiles.GetOrCreateProfile(c.Request.Context(), middleware.SubjectFrom(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// PATCH /api/me
func (h *Handler) updateMe(c *gin.Context) {
	var payload service.UpsertProfilePayload
	if !bindJSON(c, &payload) {
		return
	}
	in, err := service.ParseUpsertProfile(payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	p, err := h.profiles.UpsertProfile(c.Request.Context(), middleware.SubjectFrom(c), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// GET /api/me/events?limit=N
func (h *Handler) listMyEvents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	events, err := h.audit.Activity(c.Request.Context(), middleware.SubjectFrom(c), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events)
}
