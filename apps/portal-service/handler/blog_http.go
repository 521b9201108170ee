package handler

import (
	"github.com/gin-gonic/gin"

	"nightlife-portal/apps/portal-service/converter"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
)

// ListBlogs 博客列表
func (h *HTTPHandler) ListBlogs(c *gin.Context) {
	params := h.converter.ListParams(c.Request.URL.Query(), converter.QueryCategory)
	result, err := h.svc.ListBlogs(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	h.writeList(c, model.ResourceBlogs, params.Admin, len(result.Items), result)
}

// GetBlog 博客详情
func (h *HTTPHandler) GetBlog(c *gin.Context) {
	blog, err := h.svc.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	h.writeCached(c, model.ResourceBlogs, httpx.DetailCache, 1, blog)
}

// FeaturedBlogs 推荐博客
func (h *HTTPHandler) FeaturedBlogs(c *gin.Context) {
	blogs, err := h.svc.FeaturedBlogs(c.Request.Context())
	if err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	h.writeCached(c, model.ResourceBlogs, httpx.FeaturedCache, len(blogs), blogs)
}

// CreateBlog 创建博客，支持multipart上传image和video
func (h *HTTPHandler) CreateBlog(c *gin.Context) {
	var params model.CreateBlogParams
	files, err := h.bindBody(c, &params, &BlogUploads)
	if err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	if tags, ok := formTags(c); ok {
		params.Tags = tags
	}
	if uri, ok := h.fileURI(files, "image"); ok {
		params.Image = uri
	}
	if uri, ok := h.fileURI(files, "video"); ok {
		params.Video = uri
	}

	blog, err := h.svc.CreateBlog(c.Request.Context(), &params)
	if err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	httpx.Created(c, blog)
}

// UpdateBlog 更新博客
func (h *HTTPHandler) UpdateBlog(c *gin.Context) {
	var patch model.BlogPatch
	files, err := h.bindBody(c, &patch, &BlogUploads)
	if err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	if tags, ok := formTags(c); ok {
		patch.Tags = &tags
	}
	if uri, ok := h.fileURI(files, "image"); ok {
		patch.Image = &uri
	}
	if uri, ok := h.fileURI(files, "video"); ok {
		patch.Video = &uri
	}

	blog, err := h.svc.UpdateBlog(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	httpx.OK(c, blog)
}

// DeleteBlog 删除博客
func (h *HTTPHandler) DeleteBlog(c *gin.Context) {
	if err := h.svc.DeleteBlog(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, model.MsgBlogNotFound)
		return
	}
	httpx.Message(c, model.MsgBlogRemoved)
}

// InvalidateBlogCache 递增博客缓存版本
func (h *HTTPHandler) InvalidateBlogCache(c *gin.Context) {
	params := &model.InvalidateCacheParams{Resources: []string{string(model.ResourceBlogs)}}
	versions, err := h.svc.InvalidateCache(c.Request.Context(), params)
	if err != nil {
		h.fail(c, err, "")
		return
	}
	httpx.OK(c, converter.InvalidateResponse{Message: "Blog cache invalidated", Versions: versions})
}
