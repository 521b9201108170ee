package handler

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/apps/portal-service/converter"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
	"nightlife-portal/pkg/middleware"
)

// Login 邮箱密码登录
func (h *HTTPHandler) Login(c *gin.Context) {
	var params model.LoginParams
	if _, err := h.bindBody(c, &params, nil); err != nil {
		h.fail(c, err, "")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	httpx.OK(c, result)
}

// Me 当前登录账号
func (h *HTTPHandler) Me(c *gin.Context) {
	httpx.OK(c, middleware.CurrentPrincipal(c))
}

// CacheVersion 各资源当前缓存版本，客户端轮询比对
func (h *HTTPHandler) CacheVersion(c *gin.Context) {
	versions, err := h.svc.CacheVersions(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	httpx.OK(c, converter.CacheVersionsResponse{
		Versions:     versions,
		PollInterval: int(h.pollInterval.Seconds()),
	})
}

// InvalidateCache 手动失效指定资源，resources为空时全部失效
func (h *HTTPHandler) InvalidateCache(c *gin.Context) {
	var params model.InvalidateCacheParams
	if _, err := h.bindBody(c, &params, nil); err != nil {
		h.fail(c, err, "")
		return
	}

	versions, err := h.svc.InvalidateCache(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	httpx.OK(c, converter.InvalidateResponse{Message: "Cache invalidated", Versions: versions})
}

// ListAudit 审计日志
func (h *HTTPHandler) ListAudit(c *gin.Context) {
	result, err := h.svc.ListAudit(c.Request.Context(), h.converter.PageNumber(c.Request.URL.Query()))
	if err != nil {
		h.fail(c, err, "")
		return
	}
	httpx.OK(c, result)
}
