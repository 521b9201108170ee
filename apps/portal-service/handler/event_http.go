package handler

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/apps/portal-service/converter"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
)

// ListEvents 活动列表
func (h *HTTPHandler) ListEvents(c *gin.Context) {
	params := h.converter.ListParams(c.Request.URL.Query(), converter.QueryCategory)
	result, err := h.svc.ListEvents(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	h.writeList(c, model.ResourceEvents, params.Admin, len(result.Items), result)
}

// GetEvent 活动详情
func (h *HTTPHandler) GetEvent(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	h.writeCached(c, model.ResourceEvents, httpx.DetailCache, 1, event)
}

// FeaturedEvents 推荐活动
func (h *HTTPHandler) FeaturedEvents(c *gin.Context) {
	events, err := h.svc.FeaturedEvents(c.Request.Context())
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	h.writeCached(c, model.ResourceEvents, httpx.FeaturedCache, len(events), events)
}

// UpcomingEvents 即将开始的活动
func (h *HTTPHandler) UpcomingEvents(c *gin.Context) {
	events, err := h.svc.UpcomingEvents(c.Request.Context())
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	h.writeCached(c, model.ResourceEvents, httpx.FeaturedCache, len(events), events)
}

// CreateEvent 创建活动，支持multipart上传image
func (h *HTTPHandler) CreateEvent(c *gin.Context) {
	var params model.CreateEventParams
	files, err := h.bindBody(c, &params, &EventUploads)
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	if tags, ok := formTags(c); ok {
		params.Tags = tags
	}
	if uri, ok := h.fileURI(files, "image"); ok {
		params.Image = uri
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	httpx.Created(c, event)
}

// UpdateEvent 更新活动
func (h *HTTPHandler) UpdateEvent(c *gin.Context) {
	var patch model.EventPatch
	files, err := h.bindBody(c, &patch, &EventUploads)
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	if tags, ok := formTags(c); ok {
		patch.Tags = &tags
	}
	if uri, ok := h.fileURI(files, "image"); ok {
		patch.Image = &uri
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	httpx.OK(c, event)
}

// DeleteEvent 删除活动
func (h *HTTPHandler) DeleteEvent(c *gin.Context) {
	if err := h.svc.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, model.MsgEventNotFound)
		return
	}
	httpx.Message(c, model.MsgEventRemoved)
}
