package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/handig/internal/auth"
	"github.com/Leganyst/handig/internal/service"
)

// Единый формат ошибки: {"error": "..."}.
type ErrorBody struct {
	Error string `json:"error"`
}

const internalMessage = "internal server error"

func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Error переводит ошибку сервиса в HTTP-ответ и прерывает цепочку обработчиков.
// Причина 500 пишется в лог, клиенту уходит общий текст.
func Error(c *gin.Context, err error) {
	status, msg := Classify(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg})
}

// BadRequest: тело запроса не JSON или не те типы.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorBody{Error: msg})
}

// Classify возвращает HTTP-статус и текст для клиента.
func Classify(err error) (int, string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Message
	case errors.Is(err, auth.ErrMisconfigured):
		return http.StatusInternalServerError, "Server auth misconfiguration"
	case errors.Is(err, auth.ErrMissingBearer):
		return http.StatusUnauthorized, "Missing or invalid Authorization header"
	case errors.Is(err, auth.ErrInvalidPayload):
		return http.StatusUnauthorized, "Invalid token payload"
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, "Invalid or expired token"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Forbidden: you do not own this provider"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, err.Error()
	default:
		return http.StatusInternalServerError, internalMessage
	}
}
