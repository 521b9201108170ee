package handler

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/apps/portal-service/converter"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
)

// ListComments 公开评论列表，可按contentType+contentId过滤
func (h *HTTPHandler) ListComments(c *gin.Context) {
	query := c.Request.URL.Query()
	comments, err := h.svc.ListComments(c.Request.Context(),
		query.Get(converter.QueryContentType), query.Get(converter.QueryContentID))
	if err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}
	h.writeCached(c, model.ResourceComments, httpx.ListCache, len(comments), comments)
}

// CreateComment 发表评论，需审核后才公开
func (h *HTTPHandler) CreateComment(c *gin.Context) {
	var params model.CreateCommentParams
	if _, err := h.bindBody(c, &params, nil); err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}

	comment, err := h.svc.CreateComment(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}
	httpx.Created(c, comment)
}

// ListAllComments 后台评论列表
func (h *HTTPHandler) ListAllComments(c *gin.Context) {
	result, err := h.svc.ListAllComments(c.Request.Context(), h.converter.PageNumber(c.Request.URL.Query()))
	if err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}
	httpx.OK(c, result)
}

// GetComment 评论详情
func (h *HTTPHandler) GetComment(c *gin.Context) {
	comment, err := h.svc.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}
	httpx.OK(c, comment)
}

// UpdateComment 修改或审核评论
func (h *HTTPHandler) UpdateComment(c *gin.Context) {
	var patch model.CommentPatch
	if _, err := h.bindBody(c, &patch, nil); err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}

	comment, err := h.svc.UpdateComment(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}
	httpx.OK(c, comment)
}

// DeleteComment 删除评论及其直接回复
func (h *HTTPHandler) DeleteComment(c *gin.Context) {
	deleted, err := h.svc.DeleteComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}
	httpx.OK(c, converter.DeleteCommentResponse{Message: model.MsgCommentRemoved, Deleted: deleted})
}

// ApproveComments 批量审核通过
func (h *HTTPHandler) ApproveComments(c *gin.Context) {
	var params model.BulkApproveParams
	if _, err := h.bindBody(c, &params, nil); err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}

	approved, err := h.svc.ApproveComments(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, model.MsgCommentNotFound)
		return
	}
	httpx.OK(c, converter.ApproveResponse{Message: "Comments approved", Approved: approved})
}
