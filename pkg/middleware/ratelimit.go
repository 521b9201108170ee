package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"nightlife-portal/pkg/httpx"
)

// Counter 固定窗口计数器
type Counter interface {
	IncrWithExpire(ctx context.Context, key string, expiration time.Duration) (int64, error)
}

// RateLimiter 基于Redis的固定窗口限流
type RateLimiter struct {
	counter Counter
	limit   int
	window  time.Duration
	logger  kratoslog.Logger
	now     func() time.Time
}

// NewRateLimiter 创建限流器，counter为nil或limit<=0时不限流
func NewRateLimiter(counter Counter, limit int, window time.Duration, logger kratoslog.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		logger:  logger,
		now:     time.Now,
	}
}

// Limit 按客户端IP和路由限流，Redis不可用时放行
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.counter == nil || rl.limit <= 0 {
			c.Next()
			return
		}

		bucket := rl.now().UnixNano() / int64(rl.window)
		key := fmt.Sprintf("portal:ratelimit:%s:%s:%s:%d", c.Request.Method, c.FullPath(), c.ClientIP(), bucket)

		n, err := rl.counter.IncrWithExpire(c.Request.Context(), key, rl.window)
		if err != nil {
			rl.logger.Log(kratoslog.LevelWarn, "msg", "Rate limit check failed", "key", key, "error", err)
			c.Next()
			return
		}

		if n > int64(rl.limit) {
			httpx.Abort(c, httpx.TooManyRequests())
			return
		}
		c.Next()
	}
}
