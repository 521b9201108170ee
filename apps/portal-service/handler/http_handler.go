package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"nightlife-portal/apps/portal-service/converter"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/apps/portal-service/service"
	"nightlife-portal/pkg/httpx"
	"nightlife-portal/pkg/logger"
	"nightlife-portal/pkg/middleware"
)

// Options HTTP处理器依赖
type Options struct {
	Service      *service.Service
	Auth         *middleware.AuthMiddleware
	Limiter      *middleware.RateLimiter // 可为nil
	Hub          http.Handler            // 缓存失效推送，可为nil
	PollInterval time.Duration
	UploadsDir   string
	PublicDir    string
	Logger       logger.Logger
}

// HTTPHandler HTTP处理器
type HTTPHandler struct {
	svc          *service.Service
	converter    *converter.Converter
	auth         *middleware.AuthMiddleware
	limiter      *middleware.RateLimiter
	hub          http.Handler
	pollInterval time.Duration
	uploadsDir   string
	publicDir    string
	logger       logger.Logger
}

// NewHTTPHandler 创建HTTP处理器
func NewHTTPHandler(opts Options) *HTTPHandler {
	h := &HTTPHandler{
		svc:          opts.Service,
		converter:    converter.NewConverter(),
		auth:         opts.Auth,
		limiter:      opts.Limiter,
		hub:          opts.Hub,
		pollInterval: opts.PollInterval,
		uploadsDir:   opts.UploadsDir,
		publicDir:    opts.PublicDir,
		logger:       opts.Logger,
	}
	if h.logger == nil {
		h.logger = logger.GetLogger()
	}
	if h.pollInterval <= 0 {
		h.pollInterval = 30 * time.Second
	}
	return h
}

// RegisterRoutes 注册路由
func (h *HTTPHandler) RegisterRoutes(engine *gin.Engine) {
	admin := append(h.auth.Admin(), middleware.NoStore())
	limited := h.rateLimit()

	api := engine.Group("/api")
	api.GET("/health", h.Health)

	// 认证
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", chain(limited, h.Login)...)
		authGroup.GET("/me", h.auth.Protect(), middleware.NoStore(), h.Me)
	}

	// 博客
	blogs := api.Group("/blogs")
	{
		blogs.GET("", h.ListBlogs)
		blogs.GET("/featured/list", h.FeaturedBlogs)
		blogs.GET("/:id", h.GetBlog)
		blogs.POST("", chain(admin, h.CreateBlog)...)
		blogs.PUT("/:id", chain(admin, h.UpdateBlog)...)
		blogs.DELETE("/:id", chain(admin, h.DeleteBlog)...)
		blogs.POST("/invalidate-cache", chain(admin, h.InvalidateBlogCache)...)
	}

	// 活动
	events := api.Group("/events")
	{
		events.GET("", h.ListEvents)
		events.GET("/featured/list", h.FeaturedEvents)
		events.GET("/upcoming/list", h.UpcomingEvents)
		events.GET("/:id", h.GetEvent)
		events.POST("", chain(admin, h.CreateEvent)...)
		events.PUT("/:id", chain(admin, h.UpdateEvent)...)
		events.DELETE("/:id", chain(admin, h.DeleteEvent)...)
	}

	// 职位
	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.ListJobs)
		jobs.GET("/featured/list", h.FeaturedJobs)
		jobs.GET("/:id", h.GetJob)
		jobs.POST("", chain(admin, h.CreateJob)...)
		jobs.PUT("/:id", chain(admin, h.UpdateJob)...)
		jobs.DELETE("/:id", chain(admin, h.DeleteJob)...)
	}

	// 轮播图
	carousel := api.Group("/carousel")
	{
		carousel.GET("", h.ListSlides)
		carousel.GET("/:id", chain(admin, h.GetSlide)...)
		carousel.POST("", chain(admin, h.CreateSlide)...)
		carousel.PUT("/order/update", chain(admin, h.ReorderSlides)...)
		carousel.PUT("/:id", chain(admin, h.UpdateSlide)...)
		carousel.DELETE("/:id", chain(admin, h.DeleteSlide)...)
	}

	// 评论
	comments := api.Group("/comments")
	{
		comments.GET("", h.ListComments)
		comments.POST("", chain(limited, h.CreateComment)...)
		comments.GET("/admin/all", chain(admin, h.ListAllComments)...)
		comments.PUT("/approve/bulk", chain(admin, h.ApproveComments)...)
		comments.GET("/:id", chain(admin, h.GetComment)...)
		comments.PUT("/:id", chain(admin, h.UpdateComment)...)
		comments.DELETE("/:id", chain(admin, h.DeleteComment)...)
	}

	// 缓存失效
	cache := api.Group("/cache")
	{
		cache.GET("/version", middleware.NoStore(), h.CacheVersion)
		cache.POST("/invalidate", chain(admin, h.InvalidateCache)...)
		if h.hub != nil {
			cache.GET("/ws", gin.WrapH(h.hub))
		}
	}

	// 审计日志
	api.GET("/audit", chain(admin, h.ListAudit)...)

	// 静态文件
	if h.uploadsDir != "" {
		engine.Static("/uploads", h.uploadsDir)
	}
	if h.publicDir != "" {
		engine.NoRoute(h.servePublic(http.FileServer(http.Dir(h.publicDir))))
	}
}

// rateLimit 限流中间件，未配置时为空
func (h *HTTPHandler) rateLimit() []gin.HandlerFunc {
	if h.limiter == nil {
		return nil
	}
	return []gin.HandlerFunc{h.limiter.Limit()}
}

// servePublic 未匹配的GET请求交给public目录，/api下的返回JSON 404
func (h *HTTPHandler) servePublic(files http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			httpx.Fail(c, httpx.NotFound("Not found"))
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}

// Health 健康检查
func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Server is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// fail 写出错误。服务端错误记录原始错误，客户端只看到通用消息
func (h *HTTPHandler) fail(c *gin.Context, err error, notFound string) {
	mapped := h.converter.APIError(err, notFound)
	apiErr := httpx.AsAPIError(mapped)
	if apiErr.Status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "Request failed",
			logger.F("method", c.Request.Method),
			logger.F("path", c.FullPath()),
			logger.F("error", err.Error()))
	}
	httpx.Fail(c, apiErr)
}

// bindBody 按Content-Type绑定JSON或multipart表单；multipart时先校验文件，
// 文件不合法时请求在写库前被拒绝。policy为nil表示只接受JSON。
func (h *HTTPHandler) bindBody(c *gin.Context, obj any, policy *UploadPolicy) (map[string]*UploadedFile, error) {
	if policy != nil && isMultipart(c.Request) {
		files, err := collectUploads(c, *policy)
		if err != nil {
			return nil, err
		}
		// 只映射文本字段，文件已由collectUploads处理
		if err := binding.MapFormWithTag(obj, c.Request.MultipartForm.Value, "form"); err != nil {
			return nil, httpx.BadRequest(MsgInvalidBody)
		}
		return files, nil
	}

	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return nil, httpx.BadRequest(MsgInvalidBody)
	}
	return nil, nil
}

// formTags multipart中的tags字段，可以重复也可以逗号分隔
func formTags(c *gin.Context) (model.TagList, bool) {
	if c.Request.MultipartForm == nil {
		return nil, false
	}
	values, ok := c.Request.MultipartForm.Value["tags"]
	if !ok {
		return nil, false
	}
	return model.ParseTags(strings.Join(values, ",")), true
}

// fileURI 上传文件转为data-URI，没有文件时返回false
func (h *HTTPHandler) fileURI(files map[string]*UploadedFile, field string) (string, bool) {
	f, ok := files[field]
	if !ok {
		return "", false
	}
	return h.converter.DataURI(f.MIME, f.Data), true
}

// writeCached 公开读接口的缓存响应，ETag包含资源当前缓存版本
func (h *HTTPHandler) writeCached(c *gin.Context, resource model.Resource, profile httpx.CacheProfile, count int, obj interface{}) {
	ctx := c.Request.Context()
	var version int64
	versions, err := h.svc.CacheVersions(ctx)
	if err != nil {
		h.logger.Warn(ctx, "Failed to load cache version",
			logger.F("resource", resource),
			logger.F("error", err.Error()))
	} else {
		version = versions[resource]
	}

	etag := httpx.ETag(string(resource), c.Request.URL.Path, c.Request.URL.Query(), count, version)
	httpx.WriteCached(c, profile, etag, obj)
}

// writeList 列表响应，管理视图不缓存
func (h *HTTPHandler) writeList(c *gin.Context, resource model.Resource, admin bool, count int, obj interface{}) {
	if admin {
		httpx.SetNoStore(c)
		httpx.OK(c, obj)
		return
	}
	h.writeCached(c, resource, httpx.ListCache, count, obj)
}

// chain 中间件加处理函数，每次返回新切片
func chain(pre []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(pre)+1)
	out = append(out, pre...)
	return append(out, handler)
}
