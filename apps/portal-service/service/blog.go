package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
)

// ListBlogs 博客列表
func (s *Service) ListBlogs(ctx context.Context, params *model.ListParams) (*model.PageResult[*model.Blog], error) {
	return listContent(ctx, s.blogs, model.ResourceBlogs, params)
}

// GetBlog 博客详情
func (s *Service) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	return getContent(ctx, s.blogs, model.ResourceBlogs, id)
}

// FeaturedBlogs 推荐博客
func (s *Service) FeaturedBlogs(ctx context.Context) ([]*model.Blog, error) {
	return featuredContent(ctx, s.blogs, model.ResourceBlogs)
}

// CreateBlog 创建博客
func (s *Service) CreateBlog(ctx context.Context, params *model.CreateBlogParams) (*model.Blog, error) {
	params.Normalize()
	if err := s.validate(params); err != nil {
		return nil, err
	}

	now := s.now()
	blog := &model.Blog{
		ID:        primitive.NewObjectID(),
		Title:     params.Title,
		Excerpt:   params.Excerpt,
		Content:   params.Content,
		Author:    params.Author,
		Category:  params.Category,
		Image:     params.Image,
		Video:     params.Video,
		Tags:      []string(params.Tags),
		Published: model.BoolOr(params.Published, true),
		Featured:  params.Featured,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return createContent(ctx, s, s.blogs, model.ResourceBlogs, blog, blog.ID.Hex())
}

// UpdateBlog 更新博客
func (s *Service) UpdateBlog(ctx context.Context, id string, patch *model.BlogPatch) (*model.Blog, error) {
	patch.Normalize()
	if err := s.validate(patch); err != nil {
		return nil, err
	}
	return updateContent(ctx, s, s.blogs, model.ResourceBlogs, id, patch)
}

// DeleteBlog 删除博客
func (s *Service) DeleteBlog(ctx context.Context, id string) error {
	return deleteContent(ctx, s, s.blogs, model.ResourceBlogs, id)
}
