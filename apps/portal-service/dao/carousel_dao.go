package dao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nightlife-portal/apps/portal-service/model"
)

// carouselDAO 轮播图DAO
type carouselDAO struct {
	mongoStore[model.CarouselSlide, model.SlidePatch]
}

// NewCarouselDAO 创建轮播图DAO实例
func NewCarouselDAO(db *mongo.Database) CarouselDAO {
	return &carouselDAO{
		mongoStore: newMongoStore[model.CarouselSlide, model.SlidePatch](db, model.CollectionCarousel),
	}
}

// ListSlides all为false时只返回启用的轮播图
func (d *carouselDAO) ListSlides(ctx context.Context, all bool) ([]*model.CarouselSlide, error) {
	filter := bson.M{}
	if !all {
		filter["active"] = true
	}
	return d.find(ctx, filter, options.Find().SetSort(SortByOrder))
}

// UpdateOrder 修改单个轮播图的顺序
func (d *carouselDAO) UpdateOrder(ctx context.Context, id primitive.ObjectID, order int, now time.Time) error {
	res, err := d.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"order": order, "updatedAt": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
