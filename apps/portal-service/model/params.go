package model

import (
	"strings"
	"time"
)

// CreateBlogParams 创建博客参数
type CreateBlogParams struct {
	Title     string  `json:"title" form:"title" validate:"required"`
	Excerpt   string  `json:"excerpt" form:"excerpt" validate:"required"`
	Content   string  `json:"content" form:"content" validate:"required"`
	Author    string  `json:"author" form:"author" validate:"required"`
	Category  string  `json:"category" form:"category" validate:"required,blog_category"`
	Image     string  `json:"image" form:"image" validate:"required"`
	Video     string  `json:"video" form:"video"`
	Tags      TagList `json:"tags" form:"-"`
	Published *bool   `json:"published" form:"published"`
	Featured  bool    `json:"featured" form:"featured"`
}

// Normalize 去除首尾空白
func (p *CreateBlogParams) Normalize() {
	trimAll(&p.Title, &p.Excerpt, &p.Content, &p.Author, &p.Category, &p.Image, &p.Video)
	p.Tags = p.Tags.Normalize()
}

// CreateEventParams 创建活动参数
type CreateEventParams struct {
	Title            string  `json:"title" form:"title" validate:"required"`
	Description      string  `json:"description" form:"description" validate:"required"`
	ShortDescription string  `json:"shortDescription" form:"shortDescription" validate:"required"`
	Date             string  `json:"date" form:"date" validate:"required,isodate"`
	Time             string  `json:"time" form:"time" validate:"required"`
	Location         string  `json:"location" form:"location" validate:"required"`
	Image            string  `json:"image" form:"image" validate:"required"`
	Capacity         *int    `json:"capacity" form:"capacity" validate:"omitnil,min=1"`
	Price            float64 `json:"price" form:"price" validate:"min=0"`
	Category         string  `json:"category" form:"category" validate:"omitempty,event_category"`
	Organizer        string  `json:"organizer" form:"organizer" validate:"required"`
	ContactEmail     string  `json:"contactEmail" form:"contactEmail" validate:"required,email"`
	Featured         bool    `json:"featured" form:"featured"`
	Published        *bool   `json:"published" form:"published"`
	Tags             TagList `json:"tags" form:"-"`
}

// Normalize 去除首尾空白
func (p *CreateEventParams) Normalize() {
	trimAll(&p.Title, &p.Description, &p.ShortDescription, &p.Date, &p.Time, &p.Location,
		&p.Image, &p.Category, &p.Organizer, &p.ContactEmail)
	p.Tags = p.Tags.Normalize()
}

// CreateJobParams 创建职位参数
type CreateJobParams struct {
	Title               string  `json:"title" validate:"required"`
	Company             string  `json:"company" validate:"required"`
	Location            string  `json:"location" validate:"required"`
	Description         string  `json:"description" validate:"required"`
	Requirements        string  `json:"requirements" validate:"required"`
	Salary              string  `json:"salary" validate:"required"`
	Type                string  `json:"type" validate:"required,job_type"`
	Category            string  `json:"category" validate:"omitempty,job_category"`
	ApplicationDeadline string  `json:"applicationDeadline" validate:"omitempty,isodate"`
	ContactEmail        string  `json:"contactEmail" validate:"required,email"`
	Image               string  `json:"image"`
	Featured            bool    `json:"featured"`
	Published           *bool   `json:"published"`
	Tags                TagList `json:"tags"`
}

// Normalize 去除首尾空白
func (p *CreateJobParams) Normalize() {
	trimAll(&p.Title, &p.Company, &p.Location, &p.Description, &p.Requirements, &p.Salary,
		&p.Type, &p.Category, &p.ApplicationDeadline, &p.ContactEmail, &p.Image)
	p.Tags = p.Tags.Normalize()
}

// CreateSlideParams 创建轮播图参数
type CreateSlideParams struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Image       string `json:"image" form:"image" validate:"required"`
	AltText     string `json:"altText" form:"altText" validate:"required"`
	Link        string `json:"link" form:"link"`
	Order       int    `json:"order" form:"order"`
	Active      *bool  `json:"active" form:"active"`
	Description string `json:"description" form:"description"`
}

// Normalize 去除首尾空白
func (p *CreateSlideParams) Normalize() {
	trimAll(&p.Title, &p.Image, &p.AltText, &p.Link, &p.Description)
}

// CreateCommentParams 发表评论参数
type CreateCommentParams struct {
	Content       string `json:"content" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	ContentType   string `json:"contentType" validate:"required,content_type"`
	ContentID     string `json:"contentId" validate:"required,objectid"`
	ParentComment string `json:"parentComment" validate:"omitempty,objectid"`
}

// Normalize 去除首尾空白
func (p *CreateCommentParams) Normalize() {
	trimAll(&p.Content, &p.Author, &p.Email, &p.ContentType, &p.ContentID, &p.ParentComment)
}

// SlideOrder 单个轮播图的新顺序
type SlideOrder struct {
	ID    string `json:"id" validate:"required,objectid"`
	Order int    `json:"order"`
}

// ReorderSlidesParams 轮播图排序参数
type ReorderSlidesParams struct {
	Slides []SlideOrder `json:"slides" validate:"required,dive"`
}

// BulkApproveParams 批量审核评论参数
type BulkApproveParams struct {
	CommentIDs []string `json:"commentIds" validate:"required,dive,objectid"`
}

// InvalidateCacheParams 手动失效缓存参数，为空表示全部资源
type InvalidateCacheParams struct {
	Resources []string `json:"resources" validate:"dive,resource"`
}

// LoginParams 登录参数
type LoginParams struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult 登录结果
type LoginResult struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

// ReorderResult 排序结果
type ReorderResult struct {
	Updated int `json:"updated"`
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}

func trimPtr(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// BoolOr 指针为空时使用默认值
func BoolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// StringOr 空字符串时使用默认值
func StringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// TimePtr 返回时间指针
func TimePtr(t time.Time) *time.Time {
	return &t
}
