package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/logger"
	"nightlife-portal/pkg/telemetry"
)

// 博客、活动、职位的通用读写流程

func listContent[T any, P any](ctx context.Context, d dao.ContentDAO[T, P], resource model.Resource, params *model.ListParams) (*model.PageResult[*T], error) {
	ctx, span := telemetry.StartSpan(ctx, fmt.Sprintf("portal.service.List.%s", resource))
	defer span.End()

	params.Normalize(model.DefaultPageSize)
	span.SetAttributes(
		attribute.Int("list.page", params.Page),
		attribute.Bool("list.admin", params.Admin),
		attribute.Bool("list.search", params.Search != ""),
	)

	items, total, err := d.List(ctx, params)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list %s: %w", resource, err))
	}
	span.SetAttributes(attribute.Int64("list.total", total))
	return model.NewPageResult(items, params.Page, params.PageSize, total), nil
}

func getContent[T any, P any](ctx context.Context, d dao.ContentDAO[T, P], resource model.Resource, hex string) (*T, error) {
	ctx, span := telemetry.StartSpan(ctx, fmt.Sprintf("portal.service.Get.%s", resource))
	defer span.End()
	span.SetAttributes(attribute.String("content.id", hex))

	id, err := parseID(hex)
	if err != nil {
		return nil, recordError(span, err)
	}
	item, err := d.GetByID(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}
	return item, nil
}

func featuredContent[T any, P any](ctx context.Context, d dao.ContentDAO[T, P], resource model.Resource) ([]*T, error) {
	ctx, span := telemetry.StartSpan(ctx, fmt.Sprintf("portal.service.Featured.%s", resource))
	defer span.End()

	items, err := d.Featured(ctx, model.FeaturedLimit)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("featured %s: %w", resource, err))
	}
	return items, nil
}

// createContent 插入并触发后续通知，调用方已完成校验和默认值
func createContent[T any, P any](ctx context.Context, s *Service, d dao.ContentDAO[T, P], resource model.Resource, item *T, id string) (*T, error) {
	ctx, span := telemetry.StartSpan(ctx, fmt.Sprintf("portal.service.Create.%s", resource))
	defer span.End()
	span.SetAttributes(attribute.String("content.id", id))

	if err := d.Create(ctx, item); err != nil {
		return nil, recordError(span, fmt.Errorf("create %s: %w", resource, err))
	}

	s.afterMutation(ctx, resource, model.ActionCreated, id, "")
	s.logger.Info(ctx, "Content created",
		logger.F("resource", resource),
		logger.F("id", id))
	return item, nil
}

// updateContent 校验后的patch写入数据库
func updateContent[T any, P any](ctx context.Context, s *Service, d dao.ContentDAO[T, P], resource model.Resource, hex string, patch *P) (*T, error) {
	ctx, span := telemetry.StartSpan(ctx, fmt.Sprintf("portal.service.Update.%s", resource))
	defer span.End()
	span.SetAttributes(attribute.String("content.id", hex))

	id, err := parseID(hex)
	if err != nil {
		return nil, recordError(span, err)
	}
	item, err := d.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, recordError(span, err)
	}

	s.afterMutation(ctx, resource, model.ActionUpdated, hex, "")
	return item, nil
}

func deleteContent[T any, P any](ctx context.Context, s *Service, d dao.ContentDAO[T, P], resource model.Resource, hex string) error {
	ctx, span := telemetry.StartSpan(ctx, fmt.Sprintf("portal.service.Delete.%s", resource))
	defer span.End()
	span.SetAttributes(attribute.String("content.id", hex))

	id, err := parseID(hex)
	if err != nil {
		return recordError(span, err)
	}
	if err := d.Delete(ctx, id); err != nil {
		return recordError(span, err)
	}

	s.afterMutation(ctx, resource, model.ActionDeleted, hex, "")
	s.logger.Info(ctx, "Content deleted",
		logger.F("resource", resource),
		logger.F("id", hex))
	return nil
}
