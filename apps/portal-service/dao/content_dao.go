package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nightlife-portal/apps/portal-service/model"
)

// NewBlogDAO 创建博客DAO实例
func NewBlogDAO(db *mongo.Database) BlogDAO {
	return &contentDAO[model.Blog, model.BlogPatch]{
		mongoStore:  newMongoStore[model.Blog, model.BlogPatch](db, model.CollectionBlogs),
		filterField: FilterCategory,
		sort:        SortNewest,
	}
}

// NewJobDAO 创建职位DAO实例
func NewJobDAO(db *mongo.Database) JobDAO {
	return &contentDAO[model.Job, model.JobPatch]{
		mongoStore:  newMongoStore[model.Job, model.JobPatch](db, model.CollectionJobs),
		filterField: FilterType,
		sort:        SortNewest,
	}
}

// eventDAO 活动DAO
type eventDAO struct {
	*contentDAO[model.Event, model.EventPatch]
}

// NewEventDAO 创建活动DAO实例
func NewEventDAO(db *mongo.Database) EventDAO {
	return &eventDAO{
		contentDAO: &contentDAO[model.Event, model.EventPatch]{
			mongoStore:  newMongoStore[model.Event, model.EventPatch](db, model.CollectionEvents),
			filterField: FilterCategory,
			sort:        SortByDate,
		},
	}
}

// Upcoming 即将开始的活动
func (d *eventDAO) Upcoming(ctx context.Context, from time.Time, limit int) ([]*model.Event, error) {
	opts := options.Find().SetSort(SortByDate).SetLimit(int64(limit))
	return d.find(ctx, buildUpcomingFilter(from), opts)
}
