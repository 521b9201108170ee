package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/model"
)

// ListJobs 职位列表
func (s *Service) ListJobs(ctx context.Context, params *model.ListParams) (*model.PageResult[*model.Job], error) {
	return listContent(ctx, s.jobs, model.ResourceJobs, params)
}

// GetJob 职位详情
func (s *Service) GetJob(ctx context.Context, id string) (*model.Job, error) {
	return getContent(ctx, s.jobs, model.ResourceJobs, id)
}

// FeaturedJobs 推荐职位
func (s *Service) FeaturedJobs(ctx context.Context) ([]*model.Job, error) {
	return featuredContent(ctx, s.jobs, model.ResourceJobs)
}

// CreateJob 创建职位
func (s *Service) CreateJob(ctx context.Context, params *model.CreateJobParams) (*model.Job, error) {
	params.Normalize()
	if err := s.validate(params); err != nil {
		return nil, err
	}
	deadline, err := parseOptionalDate(&params.ApplicationDeadline)
	if err != nil {
		return nil, model.NewFieldError("applicationDeadline", "isodate", "applicationDeadline must be a valid date")
	}

	now := s.now()
	job := &model.Job{
		ID:                  primitive.NewObjectID(),
		Title:               params.Title,
		Company:             params.Company,
		Location:            params.Location,
		Description:         params.Description,
		Requirements:        params.Requirements,
		Salary:              params.Salary,
		Type:                params.Type,
		Category:            model.StringOr(params.Category, model.DefaultJobCategory),
		ApplicationDeadline: deadline,
		ContactEmail:        params.ContactEmail,
		Image:               params.Image,
		Featured:            params.Featured,
		Published:           model.BoolOr(params.Published, true),
		Tags:                []string(params.Tags),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	return createContent(ctx, s, s.jobs, model.ResourceJobs, job, job.ID.Hex())
}

// UpdateJob 更新职位
func (s *Service) UpdateJob(ctx context.Context, id string, patch *model.JobPatch) (*model.Job, error) {
	patch.Normalize()
	if err := s.validate(patch); err != nil {
		return nil, err
	}
	deadline, err := parseOptionalDate(patch.ApplicationDeadlineText)
	if err != nil {
		return nil, model.NewFieldError("applicationDeadline", "isodate", "applicationDeadline must be a valid date")
	}
	patch.ApplicationDeadline = deadline
	return updateContent(ctx, s, s.jobs, model.ResourceJobs, id, patch)
}

// DeleteJob 删除职位
func (s *Service) DeleteJob(ctx context.Context, id string) error {
	return deleteContent(ctx, s, s.jobs, model.ResourceJobs, id)
}
