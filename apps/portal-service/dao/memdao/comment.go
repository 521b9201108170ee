package memdao

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/model"
)

type commentDAO struct {
	*store[model.Comment, model.CommentPatch]
}

// NewCommentDAO 内存版评论DAO
func NewCommentDAO() dao.CommentDAO {
	return &commentDAO{
		store: newStore[model.Comment, model.CommentPatch](func(c *model.Comment) primitive.ObjectID { return c.ID }),
	}
}

func newestComment(a, b *model.Comment) bool {
	return newerFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
}

// GetMany 批量查询，创建时间升序
func (d *commentDAO) GetMany(_ context.Context, ids []primitive.ObjectID) ([]*model.Comment, error) {
	wanted := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	return d.filter(func(c *model.Comment) bool { return wanted[c.ID] }, func(a, b *model.Comment) bool {
		return olderFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
}

// ListByContent 按内容查询
func (d *commentDAO) ListByContent(_ context.Context, ref *model.ContentRef, approvedOnly bool) ([]*model.Comment, error) {
	return d.filter(func(c *model.Comment) bool {
		if approvedOnly && !c.Approved {
			return false
		}
		return ref == nil || c.ContentRef == *ref
	}, newestComment)
}

// ListAll 分页查询全部
func (d *commentDAO) ListAll(_ context.Context, page, pageSize int) ([]*model.Comment, int64, error) {
	items, err := d.filter(nil, newestComment)
	if err != nil {
		return nil, 0, err
	}
	return paginate(items, model.SkipFor(page, pageSize), pageSize), int64(len(items)), nil
}

// DeleteWithReplies 删除评论和直接回复
func (d *commentDAO) DeleteWithReplies(_ context.Context, id primitive.ObjectID, now time.Time) (int64, error) {
	d.mu.Lock()
	comment, ok := d.items[id]
	if !ok {
		d.mu.Unlock()
		return 0, model.ErrNotFound
	}
	parent := comment.ParentComment

	var deleted int64
	for childID, child := range d.items {
		if child.ParentComment != nil && *child.ParentComment == id {
			delete(d.items, childID)
			deleted++
		}
	}
	delete(d.items, id)
	deleted++
	d.mu.Unlock()

	if parent != nil {
		err := d.mutate(*parent, func(doc bson.M) {
			replies, _ := doc["replies"].(bson.A)
			kept := bson.A{}
			for _, r := range replies {
				if r != id {
					kept = append(kept, r)
				}
			}
			doc["replies"] = kept
			doc["updatedAt"] = now
		})
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return deleted, err
		}
	}
	return deleted, nil
}

// ApproveMany 批量审核通过
func (d *commentDAO) ApproveMany(_ context.Context, ids []primitive.ObjectID, now time.Time) (int64, error) {
	var matched int64
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		err := d.mutate(id, func(doc bson.M) {
			doc["approved"] = true
			doc["updatedAt"] = now
		})
		if errors.Is(err, model.ErrNotFound) {
			continue
		}
		if err != nil {
			return matched, err
		}
		matched++
	}
	return matched, nil
}

// AddReply 追加回复ID
func (d *commentDAO) AddReply(_ context.Context, parent, reply primitive.ObjectID, now time.Time) error {
	return d.mutate(parent, func(doc bson.M) {
		replies, _ := doc["replies"].(bson.A)
		for _, r := range replies {
			if r == reply {
				return
			}
		}
		doc["replies"] = append(replies, reply)
		doc["updatedAt"] = now
	})
}
