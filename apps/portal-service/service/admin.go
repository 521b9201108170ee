package service

import (
	"context"
	"fmt"

	"nightlife-portal/apps/portal-service/model"
	"nightlife-portal/pkg/telemetry"
)

// ListAudit 审计日志，按时间倒序
func (s *Service) ListAudit(ctx context.Context, page int) (*model.PageResult[*model.AuditLog], error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.ListAudit")
	defer span.End()

	params := &model.ListParams{Page: page}
	params.Normalize(model.AuditPageSize)
	if s.audit == nil {
		return model.NewPageResult[*model.AuditLog](nil, params.Page, params.PageSize, 0), nil
	}

	logs, total, err := s.audit.List(ctx, params.Page, params.PageSize)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list audit logs: %w", err))
	}
	return model.NewPageResult(logs, params.Page, params.PageSize, total), nil
}

// InvalidateCache 手动递增资源的缓存版本并通知客户端，资源为空时处理全部
func (s *Service) InvalidateCache(ctx context.Context, params *model.InvalidateCacheParams) (model.CacheVersions, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.InvalidateCache")
	defer span.End()

	if err := s.validate(params); err != nil {
		return nil, recordError(span, err)
	}

	resources := model.AllResources()
	if len(params.Resources) > 0 {
		resources = resources[:0]
		for _, name := range params.Resources {
			r, _ := model.ParseResource(name)
			resources = append(resources, r)
		}
	}

	versions := make(model.CacheVersions, len(resources))
	for _, r := range resources {
		if s.cache == nil {
			versions[r] = 0
			continue
		}
		v, err := s.cache.Bump(ctx, r, model.ActionInvalidated)
		if err != nil {
			return nil, recordError(span, fmt.Errorf("bump %s: %w", r, err))
		}
		versions[r] = v
	}

	for _, r := range resources {
		s.publishEvent(ctx, r, model.ActionInvalidated, "")
		s.recordAudit(ctx, r, model.ActionInvalidated, "", "")
	}
	return versions, nil
}

// CacheVersions 当前各资源的缓存版本
func (s *Service) CacheVersions(ctx context.Context) (model.CacheVersions, error) {
	if s.cache == nil {
		versions := make(model.CacheVersions)
		for _, r := range model.AllResources() {
			versions[r] = 0
		}
		return versions, nil
	}
	return s.cache.Versions(ctx)
}
