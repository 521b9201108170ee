package handler

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/apps/portal-service/converter"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
)

// ListJobs 职位列表，按type过滤
func (h *HTTPHandler) ListJobs(c *gin.Context) {
	params := h.converter.ListParams(c.Request.URL.Query(), converter.QueryType)
	result, err := h.svc.ListJobs(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}
	h.writeList(c, model.ResourceJobs, params.Admin, len(result.Items), result)
}

// GetJob 职位详情
func (h *HTTPHandler) GetJob(c *gin.Context) {
	job, err := h.svc.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}
	h.writeCached(c, model.ResourceJobs, httpx.DetailCache, 1, job)
}

// FeaturedJobs 推荐职位
func (h *HTTPHandler) FeaturedJobs(c *gin.Context) {
	jobs, err := h.svc.FeaturedJobs(c.Request.Context())
	if err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}
	h.writeCached(c, model.ResourceJobs, httpx.FeaturedCache, len(jobs), jobs)
}

// CreateJob 创建职位，只接受JSON
func (h *HTTPHandler) CreateJob(c *gin.Context) {
	var params model.CreateJobParams
	if _, err := h.bindBody(c, &params, nil); err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}

	job, err := h.svc.CreateJob(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}
	httpx.Created(c, job)
}

// UpdateJob 更新职位
func (h *HTTPHandler) UpdateJob(c *gin.Context) {
	var patch model.JobPatch
	if _, err := h.bindBody(c, &patch, nil); err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}

	job, err := h.svc.UpdateJob(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}
	httpx.OK(c, job)
}

// DeleteJob 删除职位
func (h *HTTPHandler) DeleteJob(c *gin.Context) {
	if err := h.svc.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, model.MsgJobNotFound)
		return
	}
	httpx.Message(c, model.MsgJobRemoved)
}
