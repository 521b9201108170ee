package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	kratoslog "github.com/go-kratos/kratos/v2/log"
	goredis "github.com/go-redis/redis/v8"

	"nightlife-portal/apps/portal-service/model"
)

// Redis键和频道
const (
	CacheVersionKeyPrefix  = "portal:cache:version:"
	CacheInvalidateChannel = "portal:cache:invalidate"
)

// CacheNotifier 缓存版本管理。每次管理端修改都会递增对应资源的版本并通知客户端。
type CacheNotifier interface {
	Bump(ctx context.Context, resource model.Resource, reason string) (int64, error)
	Versions(ctx context.Context) (model.CacheVersions, error)
}

// Broadcaster 向已连接客户端推送消息，server.Hub实现了该接口
type Broadcaster interface {
	Broadcast(msg []byte)
}

// VersionStore Redis版本存储，redis.RedisClient实现了该接口
type VersionStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	MGet(ctx context.Context, keys ...string) ([]interface{}, error)
	Publish(ctx context.Context, channel string, message interface{}) error
}

// CacheVersionKey 资源的版本键
func CacheVersionKey(resource model.Resource) string {
	return CacheVersionKeyPrefix + string(resource)
}

// redisNotifier 基于Redis计数器和发布订阅
type redisNotifier struct {
	store VersionStore
	now   func() time.Time
}

// NewRedisCacheNotifier 创建Redis缓存通知器
func NewRedisCacheNotifier(store VersionStore, now func() time.Time) CacheNotifier {
	return &redisNotifier{store: store, now: now}
}

// Bump 递增版本并发布到失效频道
func (n *redisNotifier) Bump(ctx context.Context, resource model.Resource, reason string) (int64, error) {
	version, err := n.store.Incr(ctx, CacheVersionKey(resource))
	if err != nil {
		return 0, fmt.Errorf("incr cache version: %w", err)
	}

	payload, err := json.Marshal(model.CacheInvalidation{
		Resource: resource,
		Version:  version,
		Reason:   reason,
		At:       n.now(),
	})
	if err != nil {
		return version, err
	}
	if err := n.store.Publish(ctx, CacheInvalidateChannel, payload); err != nil {
		return version, fmt.Errorf("publish invalidation: %w", err)
	}
	return version, nil
}

// Versions 读取所有资源的版本，不存在的按0处理
func (n *redisNotifier) Versions(ctx context.Context) (model.CacheVersions, error) {
	resources := model.AllResources()
	keys := make([]string, len(resources))
	for i, r := range resources {
		keys[i] = CacheVersionKey(r)
	}

	values, err := n.store.MGet(ctx, keys...)
	if err != nil {
		return nil, fmt.Errorf("mget cache versions: %w", err)
	}

	versions := make(model.CacheVersions, len(resources))
	for i, r := range resources {
		versions[r] = 0
		if i >= len(values) || values[i] == nil {
			continue
		}
		s, ok := values[i].(string)
		if !ok {
			continue
		}
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			versions[r] = v
		}
	}
	return versions, nil
}

// memoryNotifier 未配置Redis时的进程内实现，直接推送给websocket客户端
type memoryNotifier struct {
	mu          sync.Mutex
	versions    model.CacheVersions
	broadcaster Broadcaster
	now         func() time.Time
}

// NewMemoryCacheNotifier 创建进程内缓存通知器，broadcaster可为nil
func NewMemoryCacheNotifier(broadcaster Broadcaster, now func() time.Time) CacheNotifier {
	return &memoryNotifier{
		versions:    make(model.CacheVersions),
		broadcaster: broadcaster,
		now:         now,
	}
}

// Bump 递增版本并广播
func (n *memoryNotifier) Bump(_ context.Context, resource model.Resource, reason string) (int64, error) {
	n.mu.Lock()
	n.versions[resource]++
	version := n.versions[resource]
	n.mu.Unlock()

	if n.broadcaster != nil {
		payload, err := json.Marshal(model.CacheInvalidation{
			Resource: resource,
			Version:  version,
			Reason:   reason,
			At:       n.now(),
		})
		if err != nil {
			return version, err
		}
		n.broadcaster.Broadcast(payload)
	}
	return version, nil
}

// Versions 当前版本
func (n *memoryNotifier) Versions(context.Context) (model.CacheVersions, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	versions := make(model.CacheVersions, len(n.versions))
	for _, r := range model.AllResources() {
		versions[r] = n.versions[r]
	}
	return versions, nil
}

// Subscriber 订阅Redis频道，redis.RedisClient实现了该接口
type Subscriber interface {
	Subscribe(ctx context.Context, channels ...string) *goredis.PubSub
}

// CacheRelay 把Redis失效频道的消息转发给websocket客户端，
// 多个进程实例共享同一频道时每个实例的客户端都能收到通知。
type CacheRelay struct {
	subscriber  Subscriber
	broadcaster Broadcaster
	logger      *kratoslog.Helper

	mu     sync.Mutex
	pubsub *goredis.PubSub
	done   chan struct{}
}

// NewCacheRelay 创建转发器
func NewCacheRelay(subscriber Subscriber, broadcaster Broadcaster, logger kratoslog.Logger) *CacheRelay {
	return &CacheRelay{
		subscriber:  subscriber,
		broadcaster: broadcaster,
		logger:      kratoslog.NewHelper(logger),
	}
}

// Start 订阅频道并开始转发
func (r *CacheRelay) Start(ctx context.Context) error {
	pubsub := r.subscriber.Subscribe(ctx, CacheInvalidateChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", CacheInvalidateChannel, err)
	}

	done := make(chan struct{})
	r.mu.Lock()
	r.pubsub = pubsub
	r.done = done
	r.mu.Unlock()

	go r.forward(pubsub.Channel(), done)
	r.logger.Infof("cache relay subscribed to %s", CacheInvalidateChannel)
	return nil
}

func (r *CacheRelay) forward(messages <-chan *goredis.Message, done chan struct{}) {
	defer close(done)
	for msg := range messages {
		r.broadcaster.Broadcast([]byte(msg.Payload))
	}
}

// Stop 取消订阅
func (r *CacheRelay) Stop(ctx context.Context) error {
	r.mu.Lock()
	pubsub, done := r.pubsub, r.done
	r.pubsub = nil
	r.mu.Unlock()

	if pubsub == nil {
		return nil
	}
	if err := pubsub.Close(); err != nil {
		return err
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
