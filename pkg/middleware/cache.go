package middleware

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/pkg/httpx"
)

// NoStore 管理端写接口禁止缓存
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		httpx.SetNoStore(c)
		c.Next()
	}
}
