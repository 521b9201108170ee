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

// ListComments 公开评论列表：只含已审核的评论，回复只填充已审核的。
// contentType和contentId都提供时才按内容过滤。
func (s *Service) ListComments(ctx context.Context, contentType, contentID string) ([]*model.CommentWithReplies, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.ListComments")
	defer span.End()
	span.SetAttributes(
		attribute.String("comment.content_type", contentType),
		attribute.String("comment.content_id", contentID),
	)

	var ref *model.ContentRef
	if contentType != "" && contentID != "" {
		r, err := s.contentRef(contentType, contentID)
		if err != nil {
			return nil, recordError(span, err)
		}
		ref = r
	}

	comments, err := s.comments.ListByContent(ctx, ref, true)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list comments: %w", err))
	}
	out, err := s.populateReplies(ctx, comments, true)
	if err != nil {
		return nil, recordError(span, err)
	}
	return out, nil
}

// ListAllComments 后台评论列表，包含未审核的
func (s *Service) ListAllComments(ctx context.Context, page int) (*model.PageResult[*model.CommentWithReplies], error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.ListAllComments")
	defer span.End()

	params := &model.ListParams{Page: page}
	params.Normalize(model.CommentAdminPageSize)
	span.SetAttributes(attribute.Int("list.page", params.Page))

	comments, total, err := s.comments.ListAll(ctx, params.Page, params.PageSize)
	if err != nil {
		return nil, recordError(span, fmt.Errorf("list all comments: %w", err))
	}
	out, err := s.populateReplies(ctx, comments, false)
	if err != nil {
		return nil, recordError(span, err)
	}
	return model.NewPageResult(out, params.Page, params.PageSize, total), nil
}

// GetComment 评论详情
func (s *Service) GetComment(ctx context.Context, hex string) (*model.Comment, error) {
	id, err := parseID(hex)
	if err != nil {
		return nil, err
	}
	return s.comments.GetByID(ctx, id)
}

// CreateComment 发表评论。评论默认未审核；引用的内容必须存在；
// 回复的父评论必须属于同一内容，创建后追加到父评论的replies。
func (s *Service) CreateComment(ctx context.Context, params *model.CreateCommentParams) (*model.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.CreateComment")
	defer span.End()

	params.Normalize()
	if err := s.validate(params); err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(
		attribute.String("comment.content_type", params.ContentType),
		attribute.String("comment.content_id", params.ContentID),
		attribute.Bool("comment.is_reply", params.ParentComment != ""),
	)

	ref, err := s.contentRef(params.ContentType, params.ContentID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if err := s.lookups[ref.Type](ctx, ref.ID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, recordError(span, model.NewFieldError("contentId", "exists",
				fmt.Sprintf("contentId does not reference an existing %s", ref.Type)))
		}
		return nil, recordError(span, fmt.Errorf("lookup %s: %w", ref.Type, err))
	}

	var parentID *primitive.ObjectID
	if params.ParentComment != "" {
		parent, err := s.replyParent(ctx, params.ParentComment, ref)
		if err != nil {
			return nil, recordError(span, err)
		}
		parentID = &parent.ID
	}

	now := s.now()
	comment := &model.Comment{
		ID:            primitive.NewObjectID(),
		Content:       params.Content,
		Author:        params.Author,
		Email:         params.Email,
		ContentRef:    *ref,
		Approved:      false,
		ParentComment: parentID,
		Replies:       []primitive.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, recordError(span, fmt.Errorf("create comment: %w", err))
	}
	if parentID != nil {
		if err := s.comments.AddReply(ctx, *parentID, comment.ID, now); err != nil {
			return nil, recordError(span, fmt.Errorf("link reply: %w", err))
		}
	}

	// 未审核的评论对公开列表不可见，不需要刷新缓存
	s.publishEvent(ctx, model.ResourceComments, model.ActionCreated, comment.ID.Hex())
	s.logger.Info(ctx, "Comment created",
		logger.F("commentID", comment.ID.Hex()),
		logger.F("contentType", ref.Type),
		logger.F("contentID", ref.ID.Hex()))
	return comment, nil
}

// UpdateComment 更新评论（审核或修改）
func (s *Service) UpdateComment(ctx context.Context, hex string, patch *model.CommentPatch) (*model.Comment, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.UpdateComment")
	defer span.End()
	span.SetAttributes(attribute.String("comment.id", hex))

	patch.Normalize()
	if err := s.validate(patch); err != nil {
		return nil, recordError(span, err)
	}
	id, err := parseID(hex)
	if err != nil {
		return nil, recordError(span, err)
	}

	comment, err := s.comments.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, recordError(span, err)
	}
	s.afterMutation(ctx, model.ResourceComments, model.ActionUpdated, hex, "")
	return comment, nil
}

// DeleteComment 删除评论及其直接回复，返回删除条数
func (s *Service) DeleteComment(ctx context.Context, hex string) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.DeleteComment")
	defer span.End()
	span.SetAttributes(attribute.String("comment.id", hex))

	id, err := parseID(hex)
	if err != nil {
		return 0, recordError(span, err)
	}
	deleted, err := s.comments.DeleteWithReplies(ctx, id, s.now())
	if err != nil {
		return 0, recordError(span, err)
	}

	span.SetAttributes(attribute.Int64("comment.deleted", deleted))
	s.afterMutation(ctx, model.ResourceComments, model.ActionDeleted, hex, fmt.Sprintf("%d deleted", deleted))
	return deleted, nil
}

// ApproveComments 批量审核通过，返回匹配条数
func (s *Service) ApproveComments(ctx context.Context, params *model.BulkApproveParams) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "portal.service.ApproveComments")
	defer span.End()

	if err := s.validate(params); err != nil {
		return 0, recordError(span, err)
	}
	ids := make([]primitive.ObjectID, 0, len(params.CommentIDs))
	for _, hex := range params.CommentIDs {
		id, err := parseID(hex)
		if err != nil {
			return 0, recordError(span, err)
		}
		ids = append(ids, id)
	}

	matched, err := s.comments.ApproveMany(ctx, ids, s.now())
	if err != nil {
		return 0, recordError(span, fmt.Errorf("approve comments: %w", err))
	}
	span.SetAttributes(attribute.Int64("comment.approved", matched))
	s.afterMutation(ctx, model.ResourceComments, model.ActionApproved, "", fmt.Sprintf("%d approved", matched))
	return matched, nil
}

// contentRef 校验并构造内容引用
func (s *Service) contentRef(contentType, contentID string) (*model.ContentRef, error) {
	t := model.ContentType(contentType)
	if _, ok := s.lookups[t]; !ok {
		return nil, model.NewFieldError("contentType", "content_type", "contentType must be one of: blog, event, job")
	}
	id, err := primitive.ObjectIDFromHex(contentID)
	if err != nil {
		return nil, model.NewFieldError("contentId", "objectid", "contentId must be a valid id")
	}
	return &model.ContentRef{Type: t, ID: id}, nil
}

// replyParent 检查父评论存在且属于同一内容
func (s *Service) replyParent(ctx context.Context, hex string, ref *model.ContentRef) (*model.Comment, error) {
	id, err := parseID(hex)
	if err != nil {
		return nil, model.NewFieldError("parentComment", "objectid", "parentComment must be a valid id")
	}
	parent, err := s.comments.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.NewFieldError("parentComment", "exists", "parentComment does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("lookup parent comment: %w", err)
	}
	if parent.ContentRef != *ref {
		return nil, model.NewFieldError("parentComment", "same_content", "parentComment belongs to different content")
	}
	return parent, nil
}

// populateReplies 填充回复内容，按replies中的顺序
func (s *Service) populateReplies(ctx context.Context, comments []*model.Comment, approvedOnly bool) ([]*model.CommentWithReplies, error) {
	var ids []primitive.ObjectID
	for _, c := range comments {
		ids = append(ids, c.Replies...)
	}

	byID := make(map[primitive.ObjectID]*model.Comment, len(ids))
	if len(ids) > 0 {
		replies, err := s.comments.GetMany(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("load replies: %w", err)
		}
		for _, r := range replies {
			if approvedOnly && !r.Approved {
				continue
			}
			byID[r.ID] = r
		}
	}

	out := make([]*model.CommentWithReplies, 0, len(comments))
	for _, c := range comments {
		item := &model.CommentWithReplies{Comment: c, Replies: make([]*model.Comment, 0, len(c.Replies))}
		for _, id := range c.Replies {
			if r, ok := byID[id]; ok {
				item.Replies = append(item.Replies, r)
			}
		}
		out = append(out, item)
	}
	return out, nil
}
