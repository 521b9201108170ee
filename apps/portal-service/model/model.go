package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog 博客文章
type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Excerpt   string             `bson:"excerpt" json:"excerpt"`
	Content   string             `bson:"content" json:"content"`
	Author    string             `bson:"author" json:"author"`
	Category  string             `bson:"category" json:"category"`
	Image     string             `bson:"image" json:"image"`           // URL或data-URI
	Video     string             `bson:"video,omitempty" json:"video"` // 可选data-URI
	Tags      []string           `bson:"tags" json:"tags"`
	Published bool               `bson:"published" json:"published"`
	Featured  bool               `bson:"featured" json:"featured"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Event 活动
type Event struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description" json:"description"`
	ShortDescription string             `bson:"shortDescription" json:"shortDescription"`
	Date             time.Time          `bson:"date" json:"date"`
	Time             string             `bson:"time" json:"time"` // 自由文本，如 "8:00 PM"
	Location         string             `bson:"location" json:"location"`
	Image            string             `bson:"image" json:"image"`
	Capacity         *int               `bson:"capacity" json:"capacity"`
	Price            float64            `bson:"price" json:"price"` // 0表示免费
	Category         string             `bson:"category" json:"category"`
	Organizer        string             `bson:"organizer" json:"organizer"`
	ContactEmail     string             `bson:"contactEmail" json:"contactEmail"`
	Featured         bool               `bson:"featured" json:"featured"`
	Published        bool               `bson:"published" json:"published"`
	Tags             []string           `bson:"tags" json:"tags"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Job 职位
type Job struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title               string             `bson:"title" json:"title"`
	Company             string             `bson:"company" json:"company"`
	Location            string             `bson:"location" json:"location"`
	Description         string             `bson:"description" json:"description"`
	Requirements        string             `bson:"requirements" json:"requirements"`
	Salary              string             `bson:"salary" json:"salary"`
	Type                string             `bson:"type" json:"type"`
	Category            string             `bson:"category" json:"category"`
	ApplicationDeadline *time.Time         `bson:"applicationDeadline" json:"applicationDeadline"`
	ContactEmail        string             `bson:"contactEmail" json:"contactEmail"`
	Image               string             `bson:"image,omitempty" json:"image,omitempty"`
	Featured            bool               `bson:"featured" json:"featured"`
	Published           bool               `bson:"published" json:"published"`
	Tags                []string           `bson:"tags" json:"tags"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CarouselSlide 首页轮播图
type CarouselSlide struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Image       string             `bson:"image" json:"image"`
	AltText     string             `bson:"altText" json:"altText"`
	Link        *string            `bson:"link" json:"link"`
	Order       int                `bson:"order" json:"order"` // 不要求唯一
	Active      bool               `bson:"active" json:"active"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ContentType 评论可以挂载的内容类型
type ContentType string

const (
	ContentTypeBlog  ContentType = "blog"
	ContentTypeEvent ContentType = "event"
	ContentTypeJob   ContentType = "job"
)

// ContentTypes 所有内容类型
func ContentTypes() []ContentType {
	return []ContentType{ContentTypeBlog, ContentTypeEvent, ContentTypeJob}
}

// Valid 是否是已知的内容类型
func (t ContentType) Valid() bool {
	for _, candidate := range ContentTypes() {
		if t == candidate {
			return true
		}
	}
	return false
}

// ContentRef 评论指向的内容
type ContentRef struct {
	Type ContentType        `bson:"contentType" json:"contentType"`
	ID   primitive.ObjectID `bson:"contentId" json:"contentId"`
}

// Comment 评论，默认未审核
type Comment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Content       string               `bson:"content" json:"content"`
	Author        string               `bson:"author" json:"author"`
	Email         string               `bson:"email" json:"email"`
	ContentRef    `bson:",inline"`
	Approved      bool                 `bson:"approved" json:"approved"`
	ParentComment *primitive.ObjectID  `bson:"parentComment" json:"parentComment"`
	Replies       []primitive.ObjectID `bson:"replies" json:"replies"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// CommentWithReplies 填充了回复内容的评论
type CommentWithReplies struct {
	*Comment
	Replies []*Comment `json:"replies"`
}

// Account 后台账号
type Account struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username  string             `bson:"username" json:"username"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"` // bcrypt哈希
	Role      string             `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AuditLog 管理操作审计日志（PostgreSQL）
type AuditLog struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AccountID  string    `json:"accountId" gorm:"type:varchar(24);index"`
	Action     string    `json:"action" gorm:"type:varchar(20);not null"`
	Resource   string    `json:"resource" gorm:"type:varchar(20);not null;index"`
	ResourceID string    `json:"resourceId" gorm:"type:varchar(24)"`
	Detail     string    `json:"detail" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
}

// TableName 指定表名
func (AuditLog) TableName() string {
	return "portal_audit_logs"
}
