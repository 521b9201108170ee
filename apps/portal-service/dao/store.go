package dao

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nightlife-portal/apps/portal-service/model"
)

// mongoStore 单集合的通用CRUD
type mongoStore[T any, P any] struct {
	coll *mongo.Collection
}

func newMongoStore[T any, P any](db *mongo.Database, collection string) mongoStore[T, P] {
	return mongoStore[T, P]{coll: db.Collection(collection)}
}

// Create 插入文档，ID和时间戳由调用方设置
func (s mongoStore[T, P]) Create(ctx context.Context, item *T) error {
	_, err := s.coll.InsertOne(ctx, item)
	return err
}

// GetByID 按ID查询
func (s mongoStore[T, P]) GetByID(ctx context.Context, id primitive.ObjectID) (*T, error) {
	var item T
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Update 应用patch并返回更新后的文档
func (s mongoStore[T, P]) Update(ctx context.Context, id primitive.ObjectID, patch *P, now time.Time) (*T, error) {
	set, err := SetDocument(patch, now)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item T
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete 删除文档
func (s mongoStore[T, P]) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Count 文档总数
func (s mongoStore[T, P]) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{})
}

// find 查询并解码全部结果
func (s mongoStore[T, P]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*T, error) {
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]*T, 0)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, cursor.Err()
}

// page 分页查询，同时返回满足条件的总数
func (s mongoStore[T, P]) page(ctx context.Context, filter bson.M, sort bson.D, skip int64, limit int) ([]*T, int64, error) {
	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sort).
		SetSkip(skip).
		SetLimit(int64(limit))
	items, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// contentDAO 博客/活动/职位的MongoDB实现
type contentDAO[T any, P any] struct {
	mongoStore[T, P]
	filterField string
	sort        bson.D
}

// List 分页列表
func (d *contentDAO[T, P]) List(ctx context.Context, params *model.ListParams) ([]*T, int64, error) {
	return d.page(ctx, buildListFilter(params, d.filterField), d.sort, params.Skip(), params.PageSize)
}

// Featured 推荐列表
func (d *contentDAO[T, P]) Featured(ctx context.Context, limit int) ([]*T, error) {
	opts := options.Find().SetSort(d.sort).SetLimit(int64(limit))
	return d.find(ctx, buildFeaturedFilter(), opts)
}
