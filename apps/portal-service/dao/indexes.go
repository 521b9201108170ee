package dao

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"nightlife-portal/apps/portal-service/model"
)

// TextIndexFields 各集合的全文索引字段
var TextIndexFields = map[string][]string{
	model.CollectionBlogs:  {"title", "excerpt", "content"},
	model.CollectionEvents: {"title", "description"},
	model.CollectionJobs:   {"title", "description", "company"},
}

// EnsureIndexes 创建所需的索引，已存在时MongoDB会直接忽略
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for collection, fields := range TextIndexFields {
		keys := bson.D{}
		for _, f := range fields {
			keys = append(keys, bson.E{Key: f, Value: "text"})
		}
		if err := createIndexes(ctx, db, collection, mongo.IndexModel{Keys: keys}); err != nil {
			return err
		}
	}

	if err := createIndexes(ctx, db, model.CollectionCarousel,
		mongo.IndexModel{Keys: bson.D{{Key: "order", Value: 1}}},
	); err != nil {
		return err
	}

	if err := createIndexes(ctx, db, model.CollectionComments,
		mongo.IndexModel{Keys: bson.D{
			{Key: "contentType", Value: 1},
			{Key: "contentId", Value: 1},
			{Key: "approved", Value: 1},
		}},
		mongo.IndexModel{Keys: bson.D{{Key: "parentComment", Value: 1}}},
		mongo.IndexModel{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	); err != nil {
		return err
	}

	return createIndexes(ctx, db, model.CollectionAccounts,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	)
}

func createIndexes(ctx context.Context, db *mongo.Database, collection string, models ...mongo.IndexModel) error {
	if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes on %s: %w", collection, err)
	}
	return nil
}
