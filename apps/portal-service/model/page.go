package model

import "math"

// ListParams 列表查询参数
type ListParams struct {
	Page     int
	PageSize int
	Category string
	Type     string
	Search   string
	Admin    bool // 管理视图，不过滤未发布内容
}

// Skip 跳过的记录数
func (p *ListParams) Skip() int64 {
	return SkipFor(p.Page, p.PageSize)
}

// Normalize 修正页码和页大小，页码上限保证跳过数不溢出
func (p *ListParams) Normalize(defaultPageSize int) {
	if p.PageSize <= 0 {
		p.PageSize = defaultPageSize
	}
	p.Page = ClampPage(p.Page, p.PageSize)
}

// ClampPage 页码限制在[1, MaxInt64/pageSize]
func ClampPage(page, pageSize int) int {
	if page < 1 {
		return 1
	}
	if pageSize > 0 {
		if limit := math.MaxInt64 / int64(pageSize); int64(page) > limit {
			return int(limit)
		}
	}
	return page
}

// SkipFor 以int64计算跳过数，页码先经过ClampPage
func SkipFor(page, pageSize int) int64 {
	page = ClampPage(page, pageSize)
	return (int64(page) - 1) * int64(pageSize)
}

// PageResult 分页结果
type PageResult[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}

// NewPageResult 计算总页数
func NewPageResult[T any](items []T, page, pageSize int, total int64) *PageResult[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &PageResult[T]{Items: items, Page: page, Pages: pages, Total: total}
}
