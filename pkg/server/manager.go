package server

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"nightlife-portal/pkg/config"
)

// Server 随应用启停的组件（HTTP服务器、websocket hub、缓存转发器）
type Server interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// ServerManager 管理HTTP服务器和附属组件。
// HTTP服务器启动失败是致命的，通过Failures通知；其他组件失败只记录日志。
type ServerManager struct {
	config     *config.Config
	logger     kratoslog.Logger
	httpServer HTTPServer
	servers    []Server
	failures   chan error
	mu         sync.RWMutex
}

// NewServerManager 创建服务器管理器
func NewServerManager(cfg *config.Config, logger kratoslog.Logger) *ServerManager {
	return &ServerManager{
		config:   cfg,
		logger:   logger,
		failures: make(chan error, 1),
	}
}

// EnableHTTP 启用HTTP服务器
func (sm *ServerManager) EnableHTTP() HTTPServer {
	if sm.httpServer == nil {
		sm.httpServer = NewHTTPServerWrapper(sm.config, sm.logger)
		sm.AddServer(sm.httpServer)
	}
	return sm.httpServer
}

// RegisterHTTPRoutes 注册HTTP路由
func (sm *ServerManager) RegisterHTTPRoutes(registerFunc func(*gin.Engine)) error {
	if sm.httpServer == nil {
		return fmt.Errorf("HTTP server not enabled")
	}
	sm.httpServer.RegisterRoutes(registerFunc)
	return nil
}

// AddServer 添加附属组件
func (sm *ServerManager) AddServer(server Server) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.servers = append(sm.servers, server)
}

// Failures HTTP服务器启动失败时收到错误
func (sm *ServerManager) Failures() <-chan error {
	return sm.failures
}

// StartAll 在后台启动所有组件
func (sm *ServerManager) StartAll(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, server := range sm.servers {
		fatal := sm.httpServer != nil && server == Server(sm.httpServer)
		go func(s Server) {
			err := s.Start(ctx)
			if err == nil {
				return
			}
			sm.logger.Log(kratoslog.LevelError, "msg", "Server start failed", "fatal", fatal, "error", err)
			if fatal {
				select {
				case sm.failures <- err:
				default:
				}
			}
		}(server)
	}

	sm.logger.Log(kratoslog.LevelInfo, "msg", "All servers started", "count", len(sm.servers))
	return nil
}

// StopAll 反向停止所有组件
func (sm *ServerManager) StopAll(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	var errs []error
	for i := len(sm.servers) - 1; i >= 0; i-- {
		if err := sm.servers[i].Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors stopping servers: %w", errors.Join(errs...))
	}
	return nil
}
