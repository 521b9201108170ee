package server

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"nightlife-portal/pkg/config"
)

// HealthCheck 依赖检查，返回nil表示可用
type HealthCheck func(ctx context.Context) error

const healthTimeout = 2 * time.Second

// NewGinEngine 创建Gin引擎
func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	return gin.New()
}

// HTTPServer HTTP服务器接口
type HTTPServer interface {
	GetEngine() *gin.Engine
	RegisterRoutes(registerFunc func(*gin.Engine))
	AddHealthCheck(name string, check HealthCheck)
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// HTTPServerWrapper Gin HTTP服务器包装器
type HTTPServerWrapper struct {
	engine *gin.Engine
	server *http.Server
	logger kratoslog.Logger

	mu     sync.RWMutex
	checks map[string]HealthCheck
}

// NewHTTPServerWrapper 创建HTTP服务器包装器，/health 汇总已注册的依赖检查
func NewHTTPServerWrapper(c *config.Config, logger kratoslog.Logger) *HTTPServerWrapper {
	engine := NewGinEngine()

	w := &HTTPServerWrapper{
		engine: engine,
		server: &http.Server{
			Addr:              c.Server.HTTP.Addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       c.Server.HTTP.Timeout,
			WriteTimeout:      c.Server.HTTP.Timeout,
		},
		logger: logger,
		checks: make(map[string]HealthCheck),
	}
	engine.GET("/health", w.health)
	return w
}

// GetEngine 获取Gin引擎
func (w *HTTPServerWrapper) GetEngine() *gin.Engine {
	return w.engine
}

// RegisterRoutes 注册路由
func (w *HTTPServerWrapper) RegisterRoutes(registerFunc func(*gin.Engine)) {
	registerFunc(w.engine)
}

// AddHealthCheck 注册依赖检查，同名覆盖
func (w *HTTPServerWrapper) AddHealthCheck(name string, check HealthCheck) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.checks[name] = check
}

// health 任一依赖不可用时返回503，错误详情只写日志
func (w *HTTPServerWrapper) health(c *gin.Context) {
	w.mu.RLock()
	names := make([]string, 0, len(w.checks))
	for name := range w.checks {
		names = append(names, name)
	}
	checks := make(map[string]HealthCheck, len(w.checks))
	for name, check := range w.checks {
		checks[name] = check
	}
	w.mu.RUnlock()
	sort.Strings(names)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	results := make(map[string]string, len(names))
	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			w.logger.Log(kratoslog.LevelWarn, "msg", "Health check failed", "dependency", name, "error", err)
			results[name] = "unavailable"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	c.JSON(code, gin.H{
		"status": status,
		"checks": results,
		"time":   time.Now().Unix(),
	})
}

// Start 启动服务器，阻塞直到Stop
func (w *HTTPServerWrapper) Start(ctx context.Context) error {
	w.logger.Log(kratoslog.LevelInfo, "msg", "HTTP server starting", "addr", w.server.Addr)
	if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 停止服务器
func (w *HTTPServerWrapper) Stop(ctx context.Context) error {
	w.logger.Log(kratoslog.LevelInfo, "msg", "HTTP server stopping")
	return w.server.Shutdown(ctx)
}
