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

// commentDAO 评论DAO
type commentDAO struct {
	mongoStore[model.Comment, model.CommentPatch]
}

// NewCommentDAO 创建评论DAO实例
func NewCommentDAO(db *mongo.Database) CommentDAO {
	return &commentDAO{
		mongoStore: newMongoStore[model.Comment, model.CommentPatch](db, model.CollectionComments),
	}
}

// GetMany 按ID批量查询，结果按创建时间升序
func (d *commentDAO) GetMany(ctx context.Context, ids []primitive.ObjectID) ([]*model.Comment, error) {
	if len(ids) == 0 {
		return []*model.Comment{}, nil
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	return d.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
}

// ListByContent 按内容查询评论
func (d *commentDAO) ListByContent(ctx context.Context, ref *model.ContentRef, approvedOnly bool) ([]*model.Comment, error) {
	return d.find(ctx, buildCommentFilter(ref, approvedOnly), options.Find().SetSort(SortNewest))
}

// ListAll 后台分页查询全部评论
func (d *commentDAO) ListAll(ctx context.Context, page, pageSize int) ([]*model.Comment, int64, error) {
	return d.page(ctx, bson.M{}, SortNewest, model.SkipFor(page, pageSize), pageSize)
}

// DeleteWithReplies 删除评论和直接回复，孙级回复保留
func (d *commentDAO) DeleteWithReplies(ctx context.Context, id primitive.ObjectID, now time.Time) (int64, error) {
	comment, err := d.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}

	replies, err := d.coll.DeleteMany(ctx, bson.M{"parentComment": id})
	if err != nil {
		return 0, err
	}

	res, err := d.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return replies.DeletedCount, err
	}

	// 从父评论的replies中移除
	if comment.ParentComment != nil {
		_, err = d.coll.UpdateOne(ctx, bson.M{"_id": *comment.ParentComment}, bson.M{
			"$pull": bson.M{"replies": id},
			"$set":  bson.M{"updatedAt": now},
		})
		if err != nil {
			return replies.DeletedCount + res.DeletedCount, err
		}
	}

	return replies.DeletedCount + res.DeletedCount, nil
}

// ApproveMany 批量审核通过
func (d *commentDAO) ApproveMany(ctx context.Context, ids []primitive.ObjectID, now time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := d.coll.UpdateMany(ctx, bson.M{"_id": bson.M{"$in": ids}}, bson.M{
		"$set": bson.M{"approved": true, "updatedAt": now},
	})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// AddReply 把回复ID追加到父评论
func (d *commentDAO) AddReply(ctx context.Context, parent, reply primitive.ObjectID, now time.Time) error {
	res, err := d.coll.UpdateOne(ctx, bson.M{"_id": parent}, bson.M{
		"$addToSet": bson.M{"replies": reply},
		"$set":      bson.M{"updatedAt": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return model.ErrNotFound
	}
	return nil
}
