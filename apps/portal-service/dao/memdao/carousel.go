package memdao

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/model"
)

type carouselDAO struct {
	*store[model.CarouselSlide, model.SlidePatch]
}

// NewCarouselDAO 内存版轮播图DAO
func NewCarouselDAO() dao.CarouselDAO {
	return &carouselDAO{
		store: newStore[model.CarouselSlide, model.SlidePatch](func(s *model.CarouselSlide) primitive.ObjectID { return s.ID }),
	}
}

// ListSlides 按order升序
func (d *carouselDAO) ListSlides(_ context.Context, all bool) ([]*model.CarouselSlide, error) {
	return d.filter(func(s *model.CarouselSlide) bool {
		return all || s.Active
	}, func(a, b *model.CarouselSlide) bool {
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return a.ID.Hex() < b.ID.Hex()
	})
}

// UpdateOrder 修改顺序
func (d *carouselDAO) UpdateOrder(_ context.Context, id primitive.ObjectID, order int, now time.Time) error {
	return d.mutate(id, func(doc bson.M) {
		doc["order"] = order
		doc["updatedAt"] = now
	})
}
