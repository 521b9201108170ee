package middleware

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/pkg/httpx"
	"nightlife-portal/pkg/logger"
)

// Recovery 错误恢复中间件，panic统一返回500
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error(c.Request.Context(), "Panic recovered",
					logger.F("error", err),
					logger.F("method", c.Request.Method),
					logger.F("path", c.Request.URL.Path))

				httpx.Abort(c, httpx.Internal())
			}
		}()

		c.Next()
	}
}
