package service

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/telemetry"
	"nightlife-portal/pkg/utils"
)

// ListEvents 活动列表，按日期升序
func (s *Service) ListEvents(ctx context.Context, params *model.ListParams) (*model.PageResult[*model.Event], error) {
	return listContent[model.Event, model.EventPatch](ctx, s.events, model.ResourceEvents, params)
}

// GetEvent 活动详情
func (s *Service) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	return getContent[model.Event, model.EventPatch](ctx, s.events, model.ResourceEvents, id)
}

// FeaturedEvents 推荐活动
func (s *Service) FeaturedEvents(ctx context.Context) ([]*model.Event, error) {
	return featuredContent[model.Event, model.EventPatch](ctx, s.events, model.ResourceEvents)
}

// UpcomingEvents 即将开始的活动
func (s *Service) UpcomingEvents(ctx context.Context) ([]*model.Event, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.UpcomingEvents")
	defer span.End()

	events, err := s.events.Upcoming(ctx, s.now(), model.UpcomingLimit)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("upcoming events: %w", err))
	}
	return events, nil
}

// CreateEvent 创建活动
func (s *Service) CreateEvent(ctx context.Context, params *model.CreateEventParams) (*model.Event, error) {
	params.Normalize()
	if err := s.validate(params); err != nil {
		return nil, err
	}
	date, err := utils.ParseDate(params.Date)
	if err != nil {
		return nil, model.NewFieldError("date", "isodate", "date must be a valid date")
	}

	now := s.now()
	event := &model.Event{
		ID:               primitive.NewObjectID(),
		Title:            params.Title,
		Description:      params.Description,
		ShortDescription: params.ShortDescription,
		Date:             date,
		Time:             params.Time,
		Location:         params.Location,
		Image:            params.Image,
		Capacity:         params.Capacity,
		Price:            params.Price,
		Category:         model.StringOr(params.Category, model.DefaultEventCategory),
		Organizer:        params.Organizer,
		ContactEmail:     params.ContactEmail,
		Featured:         params.Featured,
		Published:        model.BoolOr(params.Published, true),
		Tags:             []string(params.Tags),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return createContent[model.Event, model.EventPatch](ctx, s, s.events, model.ResourceEvents, event, event.ID.Hex())
}

// UpdateEvent 更新活动
func (s *Service) UpdateEvent(ctx context.Context, id string, patch *model.EventPatch) (*model.Event, error) {
	patch.Normalize()
	if err := s.validate(patch); err != nil {
		return nil, err
	}
	date, err := parseOptionalDate(patch.DateText)
	if err != nil {
		return nil, model.NewFieldError("date", "isodate", "date must be a valid date")
	}
	patch.Date = date
	return updateContent[model.Event, model.EventPatch](ctx, s, s.events, model.ResourceEvents, id, patch)
}

// DeleteEvent 删除活动
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return deleteContent[model.Event, model.EventPatch](ctx, s, s.events, model.ResourceEvents, id)
}
