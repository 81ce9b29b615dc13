package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leganyst/handig/internal/auth"
	"github.com/Leganyst/handig/internal/obs"
	"github.com/Leganyst/handig/internal/response"
)

const subjectKey = "sub"

// RequireAuth проверяет bearer-токен и кладёт subject в контекст запроса.
// Сам токен никогда не логируется.
func RequireAuth(verifier auth.Verifier, metrics *obs.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearer(c.GetHeader("Authorization"))
		if err != nil {
			reject(c, metrics, "missing_bearer", err)
			return
		}

		sub, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, auth.ErrMisconfigured) {
				reason = "misconfigured"
			}
			reject(c, metrics, reason, err)
			return
		}

		c.Set(subjectKey, sub)
		c.Next()
	}
}

func reject(c *gin.Context, metrics *obs.Metrics, reason string, err error) {
	if metrics != nil {
		metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
	}
	if errors.Is(err, auth.ErrMisconfigured) {
		zap.L().Error("auth misconfigured", zap.String("path", c.Request.URL.Path))
	} else {
		zap.L().Info("token rejected",
			zap.String("reason", reason),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	response.Error(c, err)
}

// SubjectFrom возвращает subject, выставленный RequireAuth.
func SubjectFrom(c *gin.Context) string {
	return c.GetString(subjectKey)
}
