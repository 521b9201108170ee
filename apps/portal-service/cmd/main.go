package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	kratoslog "github.com/go-kratos/kratos/v2/log"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/dao/memdao"
	"nightlife-portal/apps/portal-service/handler"
	"nightlife-portal/apps/portal-service/service"
	"nightlife-portal/pkg/auth"
	"nightlife-portal/pkg/middleware"
	"nightlife-portal/pkg/server"
	"nightlife-portal/pkg/utils"
)

func main() {
	// 创建应用程序
	app, err := server.NewApplication("portal-service")
	if err != nil {
		panic(err)
	}
	cfg := app.GetConfig()
	kratosLogger := app.GetKratosLogger()
	log := kratoslog.NewHelper(kratosLogger)

	// 启用HTTP服务器
	app.EnableHTTP()

	// 初始化DAO层
	opts := service.Options{
		EventTopic: cfg.Kafka.Topic,
		JWT: &auth.JWTConfig{
			Secret:     cfg.Auth.JWTSecret,
			ExpireTime: cfg.Auth.JWTExpire,
		},
		Logger: app.GetLogger(),
		Clock:  utils.SystemClock,
	}
	if cfg.UseMemoryStore() {
		set := memdao.New()
		opts.Blogs, opts.Events, opts.Jobs = set.Blogs, set.Events, set.Jobs
		opts.Carousel, opts.Comments, opts.Accounts = set.Carousel, set.Comments, set.Accounts
		opts.Audit = set.Audit
		log.Warn("using in-memory store, data is lost on restart")
	} else {
		db := app.GetMongoDB().GetDatabase()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := dao.EnsureIndexes(ctx, db); err != nil {
			cancel()
			panic("Failed to ensure indexes: " + err.Error())
		}
		cancel()

		opts.Blogs = dao.NewBlogDAO(db)
		opts.Events = dao.NewEventDAO(db)
		opts.Jobs = dao.NewJobDAO(db)
		opts.Carousel = dao.NewCarouselDAO(db)
		opts.Comments = dao.NewCommentDAO(db)
		opts.Accounts = dao.NewAccountDAO(db)
	}

	// 审计日志
	if pg := app.GetPostgreSQL(); pg != nil {
		auditDAO, err := dao.NewAuditDAO(pg)
		if err != nil {
			panic("Failed to migrate audit log: " + err.Error())
		}
		opts.Audit = auditDAO
	} else if opts.Audit == nil {
		opts.Audit = dao.NewNoopAuditDAO()
	}

	// 内容事件
	if producer := app.GetKafkaProducer(); producer != nil {
		opts.Publisher = producer
	}

	// 缓存失效通知：有Redis时经频道转发，多实例共享；否则直接推送本进程的客户端
	hub := server.NewHub(kratosLogger, nil)
	app.AddServer(hub)

	var counter middleware.Counter
	if redisClient := app.GetRedisClient(); redisClient != nil {
		opts.Cache = service.NewRedisCacheNotifier(redisClient, utils.SystemClock)
		app.AddServer(service.NewCacheRelay(redisClient, hub, kratosLogger))
		counter = redisClient
	} else {
		opts.Cache = service.NewMemoryCacheNotifier(hub, utils.SystemClock)
	}

	// 初始化Service层
	svc := service.NewService(opts)

	// 初始化Handler
	httpHandler := handler.NewHTTPHandler(handler.Options{
		Service:      svc,
		Auth:         middleware.NewAuthMiddleware(kratosLogger, opts.JWT, svc),
		Limiter:      middleware.NewRateLimiter(counter, cfg.RateLimit.PerMinute, time.Minute, kratosLogger),
		Hub:          hub,
		PollInterval: cfg.Cache.PollInterval,
		UploadsDir:   cfg.Static.UploadsDir,
		PublicDir:    cfg.Static.PublicDir,
		Logger:       app.GetLogger(),
	})

	// 注册HTTP路由
	app.RegisterHTTPRoutes(func(engine *gin.Engine) {
		httpHandler.RegisterRoutes(engine)
	})

	// 运行应用程序
	if err := app.Run(); err != nil {
		panic(err)
	}
}
