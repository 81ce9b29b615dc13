package api

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/handig/internal/response"
)

// bindJSON декодирует тело запроса. Пустое тело считается пустым объектом.
// При ошибке уже отправлен 400.
func bindJSON(c *gin.Context, dst any) bool {
	if c.Request.Body == nil {
		return true
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		response.BadRequest(c, "invalid JSON body")
		return false
	}
	return true
}
