package handler

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/apps/portal-service/converter"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
)

// ListSlides 轮播图列表，admin=true时包含未启用的
func (h *HTTPHandler) ListSlides(c *gin.Context) {
	all := h.converter.IsAdminView(c.Request.URL.Query())
	slides, err := h.svc.ListSlides(c.Request.Context(), all)
	if err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	h.writeList(c, model.ResourceCarousel, all, len(slides), slides)
}

// GetSlide 轮播图详情
func (h *HTTPHandler) GetSlide(c *gin.Context) {
	slide, err := h.svc.GetSlide(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	httpx.OK(c, slide)
}

// CreateSlide 创建轮播图，支持multipart上传image
func (h *HTTPHandler) CreateSlide(c *gin.Context) {
	var params model.CreateSlideParams
	files, err := h.bindBody(c, &params, &SlideUploads)
	if err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	if uri, ok := h.fileURI(files, "image"); ok {
		params.Image = uri
	}

	slide, err := h.svc.CreateSlide(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	httpx.Created(c, slide)
}

// UpdateSlide 更新轮播图
func (h *HTTPHandler) UpdateSlide(c *gin.Context) {
	var patch model.SlidePatch
	files, err := h.bindBody(c, &patch, &SlideUploads)
	if err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	if uri, ok := h.fileURI(files, "image"); ok {
		patch.Image = &uri
	}

	slide, err := h.svc.UpdateSlide(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	httpx.OK(c, slide)
}

// DeleteSlide 删除轮播图
func (h *HTTPHandler) DeleteSlide(c *gin.Context) {
	if err := h.svc.DeleteSlide(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	httpx.Message(c, model.MsgSlideRemoved)
}

// ReorderSlides 批量修改轮播图顺序
func (h *HTTPHandler) ReorderSlides(c *gin.Context) {
	var params model.ReorderSlidesParams
	if _, err := h.bindBody(c, &params, nil); err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}

	result, err := h.svc.ReorderSlides(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, model.MsgSlideNotFound)
		return
	}
	httpx.OK(c, converter.ReorderResponse{Message: "Order updated", Updated: result.Updated})
}
