package server

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nightlife-portal/pkg/config"
	"nightlife-portal/pkg/database"
	"nightlife-portal/pkg/kafka"
	"nightlife-portal/pkg/lifecycle"
	"nightlife-portal/pkg/logger"
	"nightlife-portal/pkg/middleware"
	"nightlife-portal/pkg/redis"
	"nightlife-portal/pkg/telemetry"
)

// Application 应用程序框架
type Application struct {
	serviceName    string
	config         *config.Config
	logger         kratoslog.Logger
	originalLogger logger.Logger
	serverManager  *ServerManager
	lifecycle      *lifecycle.LifecycleManager
	registry       *prometheus.Registry

	// 基础设施组件，未配置的为nil
	mongoDB       *database.MongoDB
	postgreSQL    *database.PostgreSQL
	redisClient   *redis.RedisClient
	kafkaProducer *kafka.Producer
	tracing       bool

	loggingMiddleware *middleware.LoggingMiddleware
	otelMiddleware    *middleware.OTelMiddleware

	httpRouteRegister func(*gin.Engine)
}

// NewApplication 加载配置并连接基础设施
func NewApplication(serviceName string) (*Application, error) {
	cfg := config.LoadConfig(serviceName)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.App.LogLevel); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	originalLogger := logger.GetLogger()
	kratosLogger := logger.NewKratosLogger(originalLogger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := &Application{
		serviceName:       serviceName,
		config:            cfg,
		logger:            kratosLogger,
		originalLogger:    originalLogger,
		serverManager:     NewServerManager(cfg, kratosLogger),
		lifecycle:         lifecycle.NewLifecycleManager(kratosLogger),
		registry:          registry,
		loggingMiddleware: middleware.NewLoggingMiddleware(kratosLogger),
		otelMiddleware:    middleware.NewOTelMiddleware(serviceName),
	}

	if err := app.initInfrastructure(); err != nil {
		app.closeInfrastructure(context.Background())
		return nil, err
	}

	return app, nil
}

// initInfrastructure 初始化基础设施组件
func (app *Application) initInfrastructure() error {
	cfg := app.config

	if cfg.Telemetry.Enabled {
		tc := telemetry.DefaultConfig(app.serviceName)
		tc.ServiceVersion = cfg.App.Version
		tc.Environment = cfg.App.Environment
		tc.SampleRate = cfg.Telemetry.SampleRate
		if err := telemetry.InitGlobal(tc); err != nil {
			return fmt.Errorf("failed to init telemetry: %w", err)
		}
		app.tracing = true
	}

	if !cfg.UseMemoryStore() {
		mongoDB, err := database.NewMongoDB(context.Background(), cfg.Database.MongoDB.URI, cfg.Database.MongoDB.DBName)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		app.mongoDB = mongoDB
		app.logger.Log(kratoslog.LevelInfo, "msg", "MongoDB connected", "db", cfg.Database.MongoDB.DBName)
	}

	if cfg.Database.PostgreSQL.DSN != "" {
		postgreSQL, err := database.NewPostgreSQL(cfg.Database.PostgreSQL.DSN, cfg.Database.PostgreSQL.DBName)
		if err != nil {
			return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		app.postgreSQL = postgreSQL
		app.logger.Log(kratoslog.LevelInfo, "msg", "PostgreSQL connected")
	}

	if cfg.Redis.Addr != "" {
		app.redisClient = redis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		// Redis只用于缓存版本、失效通知和限流，连接失败不阻止启动
		if err := app.redisClient.Ping(ctx); err != nil {
			app.logger.Log(kratoslog.LevelWarn, "msg", "Redis unavailable", "addr", cfg.Redis.Addr, "error", err)
		}
	}

	if len(cfg.Kafka.Brokers) > 0 {
		producer, err := kafka.InitProducer(cfg.Kafka.Brokers, func(err error) {
			app.logger.Log(kratoslog.LevelError, "msg", "Kafka publish failed", "error", err)
		})
		if err != nil {
			return fmt.Errorf("failed to connect to Kafka: %w", err)
		}
		app.kafkaProducer = producer
	}

	return nil
}

// closeInfrastructure 关闭基础设施连接
func (app *Application) closeInfrastructure(ctx context.Context) {
	if app.kafkaProducer != nil {
		if err := app.kafkaProducer.Close(); err != nil {
			app.logger.Log(kratoslog.LevelError, "msg", "Failed to close Kafka producer", "error", err)
		}
	}
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Log(kratoslog.LevelError, "msg", "Failed to close Redis", "error", err)
		}
	}
	if app.mongoDB != nil {
		if err := app.mongoDB.Close(); err != nil {
			app.logger.Log(kratoslog.LevelError, "msg", "Failed to close MongoDB", "error", err)
		}
	}
	if app.postgreSQL != nil {
		if err := app.postgreSQL.Close(); err != nil {
			app.logger.Log(kratoslog.LevelError, "msg", "Failed to close PostgreSQL", "error", err)
		}
	}
	if app.tracing {
		if err := telemetry.ShutdownGlobal(ctx); err != nil {
			app.logger.Log(kratoslog.LevelError, "msg", "Failed to shutdown telemetry", "error", err)
		}
	}
}

// EnableHTTP 启用HTTP服务器并安装通用中间件
func (app *Application) EnableHTTP() HTTPServer {
	httpServer := app.serverManager.EnableHTTP()
	metrics := middleware.NewMetrics(app.registry, "portal")

	httpServer.RegisterRoutes(func(engine *gin.Engine) {
		engine.Use(middleware.Recovery(app.originalLogger))
		engine.Use(app.otelMiddleware.GinMiddleware())
		engine.Use(app.otelMiddleware.RequestContext())
		engine.Use(app.loggingMiddleware.GinLogging())
		engine.Use(metrics.GinMetrics())
		engine.Use(middleware.CORS(app.config.Server.HTTP.CORSOrigins))

		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{})))
	})

	if app.mongoDB != nil {
		httpServer.AddHealthCheck("mongodb", app.mongoDB.Health)
	}
	if app.postgreSQL != nil {
		httpServer.AddHealthCheck("postgresql", app.postgreSQL.Health)
	}
	if app.redisClient != nil {
		httpServer.AddHealthCheck("redis", app.redisClient.Ping)
	}

	return httpServer
}

// AddServer 注册随HTTP服务器一起启停的组件
func (app *Application) AddServer(s Server) {
	app.serverManager.AddServer(s)
}

// AddHook 注册额外的生命周期钩子
func (app *Application) AddHook(hook lifecycle.Hook) {
	app.lifecycle.AddHook(hook)
}

// RegisterHTTPRoutes 注册HTTP路由
func (app *Application) RegisterHTTPRoutes(registerFunc func(*gin.Engine)) {
	app.httpRouteRegister = registerFunc
}

// GetMongoDB 获取MongoDB连接
func (app *Application) GetMongoDB() *database.MongoDB {
	return app.mongoDB
}

// GetRedisClient 获取Redis客户端
func (app *Application) GetRedisClient() *redis.RedisClient {
	return app.redisClient
}

// GetKafkaProducer 获取Kafka生产者
func (app *Application) GetKafkaProducer() *kafka.Producer {
	return app.kafkaProducer
}

// GetPostgreSQL 获取PostgreSQL连接
func (app *Application) GetPostgreSQL() *database.PostgreSQL {
	return app.postgreSQL
}

// GetLogger 获取原有日志器
func (app *Application) GetLogger() logger.Logger {
	return app.originalLogger
}

// GetKratosLogger 获取Kratos日志器
func (app *Application) GetKratosLogger() kratoslog.Logger {
	return app.logger
}

// GetConfig 获取配置
func (app *Application) GetConfig() *config.Config {
	return app.config
}

// Run 运行应用程序直到收到停止信号
func (app *Application) Run() error {
	if app.httpRouteRegister != nil {
		if err := app.serverManager.RegisterHTTPRoutes(app.httpRouteRegister); err != nil {
			return err
		}
	}

	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "infrastructure",
		Priority: lifecycle.PriorityInfrastructure,
		OnStop: func(ctx context.Context) error {
			app.closeInfrastructure(ctx)
			return nil
		},
	})

	app.lifecycle.AddHook(lifecycle.Hook{
		Name:     "servers",
		Priority: lifecycle.PriorityServer,
		OnStart: func(ctx context.Context) error {
			return app.serverManager.StartAll(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return app.serverManager.StopAll(ctx)
		},
	})

	if err := app.lifecycle.Start(); err != nil {
		_ = app.lifecycle.Stop()
		return fmt.Errorf("failed to start lifecycle: %w", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		select {
		case err := <-app.serverManager.Failures():
			serverErr <- err
			_ = app.lifecycle.Stop()
		case <-app.lifecycle.Done():
		}
	}()

	app.lifecycle.Wait()
	select {
	case err := <-serverErr:
		return fmt.Errorf("http server failed: %w", err)
	default:
		return nil
	}
}
