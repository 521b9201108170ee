package model

import "time"

// ContentEvent 内容变更事件，发往Kafka
type ContentEvent struct {
	Type     string    `json:"type"`
	Resource Resource  `json:"resource"`
	ID       string    `json:"id,omitempty"`
	At       time.Time `json:"at"`
}

// CacheInvalidation 缓存失效通知，经Redis频道和websocket推送给客户端
type CacheInvalidation struct {
	Resource Resource  `json:"resource"`
	Version  int64     `json:"version"`
	Reason   string    `json:"reason"`
	At       time.Time `json:"at"`
}

// CacheVersions 各资源当前的缓存版本
type CacheVersions map[Resource]int64
