package model

// 分页与列表大小
const (
	DefaultPageSize      = 10
	CommentAdminPageSize = 20
	AuditPageSize        = 50
	FeaturedLimit        = 3
	UpcomingLimit        = 3
)

// MongoDB集合名
const (
	CollectionBlogs    = "blogs"
	CollectionEvents   = "events"
	CollectionJobs     = "jobs"
	CollectionCarousel = "carousels"
	CollectionComments = "comments"
	CollectionAccounts = "users"
)

// Resource 缓存版本和内容事件使用的资源名
type Resource string

const (
	ResourceBlogs    Resource = "blogs"
	ResourceEvents   Resource = "events"
	ResourceJobs     Resource = "jobs"
	ResourceCarousel Resource = "carousel"
	ResourceComments Resource = "comments"
)

// AllResources 所有资源
func AllResources() []Resource {
	return []Resource{ResourceBlogs, ResourceEvents, ResourceJobs, ResourceCarousel, ResourceComments}
}

// ParseResource 解析资源名
func ParseResource(s string) (Resource, bool) {
	for _, r := range AllResources() {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// 内容变更动作，同时用于Kafka事件类型和审计日志
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionApproved    = "approved"
	ActionReordered   = "reordered"
	ActionInvalidated = "invalidated"
)

// 博客分类
var BlogCategories = []string{"General", "Events", "Jobs", "Sports", "Academics"}

// 活动分类
var EventCategories = []string{"Social", "Academic", "Sports", "Cultural", "Other"}

// 职位类型
var JobTypes = []string{"Full-time", "Part-time", "Contract", "Internship"}

// 职位分类
var JobCategories = []string{"Hospitality", "Event Management", "Marketing", "Operations", "Other"}

// 默认分类
const (
	DefaultEventCategory = "Other"
	DefaultJobCategory   = "Other"
)

// 404消息
const (
	MsgBlogNotFound    = "Blog not found"
	MsgEventNotFound   = "Event not found"
	MsgJobNotFound     = "Job not found"
	MsgSlideNotFound   = "Slide not found"
	MsgCommentNotFound = "Comment not found"
)

// 删除成功消息
const (
	MsgBlogRemoved    = "Blog removed"
	MsgEventRemoved   = "Event removed"
	MsgJobRemoved     = "Job removed"
	MsgSlideRemoved   = "Slide removed"
	MsgCommentRemoved = "Comment removed"
)

// Contains 判断取值是否在枚举中
func Contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
