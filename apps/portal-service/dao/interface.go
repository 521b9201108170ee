package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
)

// ContentDAO 博客/活动/职位共用的数据访问接口
type ContentDAO[T any, P any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*T, error)
	List(ctx context.Context, params *model.ListParams) ([]*T, int64, error)
	Featured(ctx context.Context, limit int) ([]*T, error)
	Update(ctx context.Context, id primitive.ObjectID, patch *P, now time.Time) (*T, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// BlogDAO 博客数据访问接口
type BlogDAO = ContentDAO[model.Blog, model.BlogPatch]

// JobDAO 职位数据访问接口
type JobDAO = ContentDAO[model.Job, model.JobPatch]

// EventDAO 活动数据访问接口
type EventDAO interface {
	ContentDAO[model.Event, model.EventPatch]
	// Upcoming 已发布且日期不早于from的活动，按日期升序
	Upcoming(ctx context.Context, from time.Time, limit int) ([]*model.Event, error)
}

// CarouselDAO 轮播图数据访问接口
type CarouselDAO interface {
	Create(ctx context.Context, slide *model.CarouselSlide) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.CarouselSlide, error)
	ListSlides(ctx context.Context, all bool) ([]*model.CarouselSlide, error)
	Update(ctx context.Context, id primitive.ObjectID, patch *model.SlidePatch, now time.Time) (*model.CarouselSlide, error)
	UpdateOrder(ctx context.Context, id primitive.ObjectID, order int, now time.Time) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// CommentDAO 评论数据访问接口
type CommentDAO interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Comment, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Comment, error)
	Update(ctx context.Context, id primitive.ObjectID, patch *model.CommentPatch, now time.Time) (*model.Comment, error)

	// ListByContent ref为nil时不按内容过滤，结果按创建时间倒序
	ListByContent(ctx context.Context, ref *model.ContentRef, approvedOnly bool) ([]*model.Comment, error)
	ListAll(ctx context.Context, page, pageSize int) ([]*model.Comment, int64, error)

	// DeleteWithReplies 删除评论及其直接回复，返回删除条数
	DeleteWithReplies(ctx context.Context, id primitive.ObjectID, now time.Time) (int64, error)
	// ApproveMany 批量审核通过，返回匹配条数
	ApproveMany(ctx context.Context, ids []primitive.ObjectID, now time.Time) (int64, error)
	AddReply(ctx context.Context, parent, reply primitive.ObjectID, now time.Time) error
}

// AccountDAO 账号数据访问接口
type AccountDAO interface {
	Create(ctx context.Context, account *model.Account) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	CountByRole(ctx context.Context, role string) (int64, error)
}

// AuditDAO 审计日志数据访问接口
type AuditDAO interface {
	Record(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, page, pageSize int) ([]*model.AuditLog, int64, error)
}
