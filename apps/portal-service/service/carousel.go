package service

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/attribute"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/logger"
	"nightlife-portal/pkg/telemetry"
)

// ListSlides 轮播图列表，all为false时只返回启用的
func (s *Service) ListSlides(ctx context.Context, all bool) ([]*model.CarouselSlide, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.ListSlides")
	defer span.End()
	span.SetAttributes(attribute.Bool("carousel.all", all))

	slides, err := s.carousel.ListSlides(ctx, all)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list slides: %w", err))
	}
	return slides, nil
}

// GetSlide 轮播图详情
func (s *Service) GetSlide(ctx context.Context, hex string) (*model.CarouselSlide, error) {
	id, err := parseID(hex)
	if err != nil {
		return nil, err
	}
	return s.carousel.GetByID(ctx, id)
}

// CreateSlide 创建轮播图
func (s *Service) CreateSlide(ctx context.Context, params *model.CreateSlideParams) (*model.CarouselSlide, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.CreateSlide")
	defer span.End()

	params.Normalize()
	if err := s.validate(params); err != nil {
		return nil, recordError(span, err)
	}

	now := s.now()
	slide := &model.CarouselSlide{
		ID:          primitive.NewObjectID(),
		Title:       params.Title,
		Image:       params.Image,
		AltText:     params.AltText,
		Order:       params.Order,
		Active:      model.BoolOr(params.Active, true),
		Description: params.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if params.Link != "" {
		slide.Link = &params.Link
	}

	if err := s.carousel.Create(ctx, slide); err != nil {
		return nil, recordError(span, fmt.Errorf("create slide: %w", err))
	}
	s.afterMutation(ctx, model.ResourceCarousel, model.ActionCreated, slide.ID.Hex(), "")
	return slide, nil
}

// UpdateSlide 更新轮播图
func (s *Service) UpdateSlide(ctx context.Context, hex string, patch *model.SlidePatch) (*model.CarouselSlide, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.UpdateSlide")
	defer span.End()
	span.SetAttributes(attribute.String("carousel.id", hex))

	patch.Normalize()
	if err := s.validate(patch); err != nil {
		return nil, recordError(span, err)
	}
	id, err := parseID(hex)
	if err != nil {
		return nil, recordError(span, err)
	}

	slide, err := s.carousel.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, recordError(span, err)
	}
	s.afterMutation(ctx, model.ResourceCarousel, model.ActionUpdated, hex, "")
	return slide, nil
}

// DeleteSlide 删除轮播图
func (s *Service) DeleteSlide(ctx context.Context, hex string) error {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.DeleteSlide")
	defer span.End()
	span.SetAttributes(attribute.String("carousel.id", hex))

	id, err := parseID(hex)
	if err != nil {
		return recordError(span, err)
	}
	if err := s.carousel.Delete(ctx, id); err != nil {
		return recordError(span, err)
	}
	s.afterMutation(ctx, model.ResourceCarousel, model.ActionDeleted, hex, "")
	return nil
}

// ReorderSlides 依次修改轮播图顺序。
// 不存在的轮播图直接跳过；存储错误会中止，之前已修改的保持不变。
func (s *Service) ReorderSlides(ctx context.Context, params *model.ReorderSlidesParams) (*model.ReorderResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.ReorderSlides")
	defer span.End()

	if err := s.validate(params); err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("carousel.slides", len(params.Slides)))

	result := &model.ReorderResult{}
	now := s.now()
	for _, item := range params.Slides {
		id, err := parseID(item.ID)
		if err != nil {
			return nil, recordError(span, err)
		}
		err = s.carousel.UpdateOrder(ctx, id, item.Order, now)
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debug(ctx, "Skipping missing slide in reorder", logger.F("id", item.ID))
			continue
		}
		if err != nil {
			if result.Updated > 0 {
				s.afterMutation(ctx, model.ResourceCarousel, model.ActionReordered, "", fmt.Sprintf("partial: %d updated", result.Updated))
			}
			return nil, recordError(span, fmt.Errorf("update slide %s order: %w", item.ID, err))
		}
		result.Updated++
	}

	s.afterMutation(ctx, model.ResourceCarousel, model.ActionReordered, "", fmt.Sprintf("%d updated", result.Updated))
	return result, nil
}
