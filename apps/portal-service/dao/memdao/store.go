// Package memdao 内存版DAO实现，用于本地开发和测试
package memdao

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"nightlife-portal/apps/portal-service/dao"
	"nightlife-portal/apps/portal-service/model"
)

// store 以ObjectID为键的通用内存存储。
// 读写都经过bson编解码，时间精度和MongoDB保持一致（毫秒、UTC）。
type store[T any, P any] struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]*T
	id    func(*T) primitive.ObjectID
}

func newStore[T any, P any](id func(*T) primitive.ObjectID) *store[T, P] {
	return &store[T, P]{
		items: make(map[primitive.ObjectID]*T),
		id:    id,
	}
}

func clone[T any](item *T) (*T, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create 插入
func (s *store[T, P]) Create(_ context.Context, item *T) error {
	stored, err := clone(item)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[s.id(stored)] = stored
	return nil
}

// GetByID 按ID查询
func (s *store[T, P]) GetByID(_ context.Context, id primitive.ObjectID) (*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	return clone(item)
}

// Update 把patch合并到已有文档
func (s *store[T, P]) Update(_ context.Context, id primitive.ObjectID, patch *P, now time.Time) (*T, error) {
	set, err := dao.SetDocument(patch, now)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, model.ErrNotFound
	}
	updated, err := merge(item, set)
	if err != nil {
		return nil, err
	}
	s.items[id] = updated
	return clone(updated)
}

// Delete 删除
func (s *store[T, P]) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Count 总数
func (s *store[T, P]) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}

// mutate 在写锁内修改单个文档
func (s *store[T, P]) mutate(id primitive.ObjectID, fn func(doc bson.M)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return model.ErrNotFound
	}
	doc, err := toDocument(item)
	if err != nil {
		return err
	}
	fn(doc)
	updated, err := fromDocument[T](doc)
	if err != nil {
		return err
	}
	s.items[id] = updated
	return nil
}

// filter 返回满足条件的文档副本，按less排序
func (s *store[T, P]) filter(match func(*T) bool, less func(a, b *T) bool) ([]*T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*T, 0)
	for _, item := range s.items {
		if match != nil && !match(item) {
			continue
		}
		c, err := clone(item)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out, nil
}

func merge[T any](item *T, set bson.M) (*T, error) {
	doc, err := toDocument(item)
	if err != nil {
		return nil, err
	}
	for k, v := range set {
		doc[k] = v
	}
	return fromDocument[T](doc)
}

func toDocument[T any](item *T) (bson.M, error) {
	raw, err := bson.Marshal(item)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func fromDocument[T any](doc bson.M) (*T, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// paginate 截取一页
func paginate[T any](items []*T, skip int64, limit int) []*T {
	if skip < 0 || skip >= int64(len(items)) {
		return []*T{}
	}
	end := int(skip) + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}

// olderFirst/newerFirst 用于按时间排序，时间相同时按ID
func newerFirst(aTime, bTime time.Time, aID, bID primitive.ObjectID) bool {
	if !aTime.Equal(bTime) {
		return aTime.After(bTime)
	}
	return aID.Hex() > bID.Hex()
}

func olderFirst(aTime, bTime time.Time, aID, bID primitive.ObjectID) bool {
	if !aTime.Equal(bTime) {
		return aTime.Before(bTime)
	}
	return aID.Hex() < bID.Hex()
}
