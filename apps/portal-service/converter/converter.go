package converter

import (
	"encoding/base64"
	"errors"
	"net/url"
	"strconv"
	"strings"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/httpx"
)

// 查询参数名
const (
	QueryPageNumber  = "pageNumber"
	QuerySearch      = "search"
	QueryAdmin       = "admin"
	QueryCategory    = "category"
	QueryType        = "type"
	QueryContentType = "contentType"
	QueryContentID   = "contentId"
)

// MsgInvalidCredentials 登录失败
const MsgInvalidCredentials = "Invalid email or password"

// Converter 请求参数和响应转换
type Converter struct{}

// NewConverter 创建转换器实例
func NewConverter() *Converter {
	return &Converter{}
}

// PageNumber 解析页码，缺失、非法或小于1时为1
func (c *Converter) PageNumber(query url.Values) int {
	page, err := strconv.Atoi(query.Get(QueryPageNumber))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// IsAdminView 是否请求管理视图
func (c *Converter) IsAdminView(query url.Values) bool {
	return query.Get(QueryAdmin) == "true"
}

// ListParams 列表查询参数，filterKey为按值精确过滤的参数名（category或type）
func (c *Converter) ListParams(query url.Values, filterKey string) *model.ListParams {
	params := &model.ListParams{
		Page:     c.PageNumber(query),
		PageSize: model.DefaultPageSize,
		Search:   strings.TrimSpace(query.Get(QuerySearch)),
		Admin:    c.IsAdminView(query),
	}
	switch filterKey {
	case QueryCategory:
		params.Category = query.Get(QueryCategory)
	case QueryType:
		params.Type = query.Get(QueryType)
	}
	return params
}

// DataURI 把文件内容编码为 data:<mime>;base64,<...>
func (c *Converter) DataURI(mime string, data []byte) string {
	var b strings.Builder
	b.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString("data:")
	b.WriteString(mime)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// FieldErrors 校验错误转换为HTTP字段错误
func (c *Converter) FieldErrors(ve *model.ValidationError) []httpx.FieldError {
	out := make([]httpx.FieldError, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		out = append(out, httpx.FieldError{Field: fe.Field, Message: fe.Message, Tag: fe.Tag})
	}
	return out
}

// APIError 把服务层错误映射为HTTP错误，notFound为该资源的404消息。
// 无法识别的错误原样返回，由httpx统一输出500。
func (c *Converter) APIError(err error, notFound string) error {
	var ve *model.ValidationError
	var apiErr *httpx.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &ve):
		return httpx.BadRequest(httpx.MsgValidation, c.FieldErrors(ve)...)
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrInvalidID):
		return httpx.NotFound(notFound)
	case errors.Is(err, model.ErrInvalidCredentials):
		return httpx.Unauthorized(MsgInvalidCredentials)
	default:
		return err
	}
}

// CacheVersionsResponse 缓存版本响应
type CacheVersionsResponse struct {
	Versions     model.CacheVersions `json:"versions"`
	PollInterval int                 `json:"pollInterval"` // 秒
}

// InvalidateResponse 手动失效缓存响应
type InvalidateResponse struct {
	Message  string              `json:"message"`
	Versions model.CacheVersions `json:"versions"`
}

// DeleteCommentResponse 删除评论响应
type DeleteCommentResponse struct {
	Message string `json:"message"`
	Deleted int64  `json:"deleted"`
}

// ApproveResponse 批量审核响应
type ApproveResponse struct {
	Message  string `json:"message"`
	Approved int64  `json:"approved"`
}

// ReorderResponse 轮播图排序响应
type ReorderResponse struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}
