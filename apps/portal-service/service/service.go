package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/auth"
	tracecontext "nightlife-portal/pkg/context"
	"nightlife-portal/pkg/logger"
	"nightlife-portal/pkg/utils"
)

// DefaultEventTopic 内容事件的默认Kafka主题
const DefaultEventTopic = "portal.content.events"

// EventPublisher 内容事件发布者，kafka.Producer实现了该接口
type EventPublisher interface {
	SendJSON(topic, key string, value interface{}) error
}

// contentLookup 检查评论引用的内容是否存在
type contentLookup func(ctx context.Context, id primitive.ObjectID) error

// Options 服务依赖
type Options struct {
	Blogs    dao.BlogDAO
	Events   dao.EventDAO
	Jobs     dao.JobDAO
	Carousel dao.CarouselDAO
	Comments dao.CommentDAO
	Accounts dao.AccountDAO
	Audit    dao.AuditDAO // 可为nil

	Cache      CacheNotifier  // 可为nil
	Publisher  EventPublisher // 可为nil
	EventTopic string

	JWT    *auth.JWTConfig
	Logger logger.Logger
	Clock  utils.Clock
}

// Service 门户内容服务
type Service struct {
	blogs    dao.BlogDAO
	events   dao.EventDAO
	jobs     dao.JobDAO
	carousel dao.CarouselDAO
	comments dao.CommentDAO
	accounts dao.AccountDAO
	audit    dao.AuditDAO

	cache     CacheNotifier
	publisher EventPublisher
	topic     string

	jwt       *auth.JWTConfig
	logger    logger.Logger
	now       utils.Clock
	validator *validator.Validate
	lookups   map[model.ContentType]contentLookup
}

// NewService 创建门户服务实例
func NewService(opts Options) *Service {
	s := &Service{
		blogs:     opts.Blogs,
		events:    opts.Events,
		jobs:      opts.Jobs,
		carousel:  opts.Carousel,
		comments:  opts.Comments,
		accounts:  opts.Accounts,
		audit:     opts.Audit,
		cache:     opts.Cache,
		publisher: opts.Publisher,
		topic:     opts.EventTopic,
		jwt:       opts.JWT,
		logger:    opts.Logger,
		now:       opts.Clock,
		validator: newValidator(),
	}
	if s.topic == "" {
		s.topic = DefaultEventTopic
	}
	if s.logger == nil {
		s.logger = logger.GetLogger()
	}
	if s.now == nil {
		s.now = utils.SystemClock
	}
	s.now = utils.MillisecondClock(s.now)

	s.lookups = map[model.ContentType]contentLookup{
		model.ContentTypeBlog: func(ctx context.Context, id primitive.ObjectID) error {
			_, err := s.blogs.GetByID(ctx, id)
			return err
		},
		model.ContentTypeEvent: func(ctx context.Context, id primitive.ObjectID) error {
			_, err := s.events.GetByID(ctx, id)
			return err
		},
		model.ContentTypeJob: func(ctx context.Context, id primitive.ObjectID) error {
			_, err := s.jobs.GetByID(ctx, id)
			return err
		},
	}
	return s
}

// parseID 解析ObjectID，格式不合法时返回 model.ErrInvalidID
func parseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, model.ErrInvalidID
	}
	return id, nil
}

// recordError 标记span失败。校验和未找到属于预期结果，不记录为错误
func recordError(span trace.Span, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		span.SetStatus(codes.Error, "validation failed")
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrInvalidID):
		span.SetStatus(codes.Error, "not found")
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// afterMutation 管理操作成功后：刷新缓存版本、发送内容事件、写审计日志。
// 三者都是尽力而为，失败只记录日志。
func (s *Service) afterMutation(ctx context.Context, resource model.Resource, action, id, detail string) {
	s.bumpCache(ctx, resource, action)
	s.publishEvent(ctx, resource, action, id)
	s.recordAudit(ctx, resource, action, id, detail)
}

func (s *Service) bumpCache(ctx context.Context, resource model.Resource, reason string) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.Bump(ctx, resource, reason); err != nil {
		s.logger.Warn(ctx, "Failed to bump cache version",
			logger.F("resource", resource),
			logger.F("error", err.Error()))
	}
}

func (s *Service) publishEvent(ctx context.Context, resource model.Resource, action, id string) {
	if s.publisher == nil {
		return
	}
	event := model.ContentEvent{
		Type:     action,
		Resource: resource,
		ID:       id,
		At:       s.now(),
	}
	key := id
	if key == "" {
		key = string(resource)
	}
	if err := s.publisher.SendJSON(s.topic, key, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish content event",
			logger.F("resource", resource),
			logger.F("action", action),
			logger.F("error", err.Error()))
	}
}

func (s *Service) recordAudit(ctx context.Context, resource model.Resource, action, id, detail string) {
	accountID := tracecontext.GetAccountID(ctx)
	if s.audit == nil || accountID == "" {
		return
	}
	entry := &model.AuditLog{
		AccountID:  accountID,
		Action:     action,
		Resource:   string(resource),
		ResourceID: id,
		Detail:     detail,
		CreatedAt:  s.now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn(ctx, "Failed to record audit log",
			logger.F("resource", resource),
			logger.F("action", action),
			logger.F("error", err.Error()))
	}
}

// parseOptionalDate 解析可选日期字段
func parseOptionalDate(text *string) (*time.Time, error) {
	if text == nil || *text == "" {
		return nil, nil
	}
	t, err := utils.ParseDate(*text)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
