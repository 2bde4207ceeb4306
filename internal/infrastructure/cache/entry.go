package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Entry 缓存条目,Value为JSON编码后的结果,便于在不同存储间共用
type Entry struct {
	Value     json.RawMessage `json:"value"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store 缓存存储后端
// 实现必须并发安全;Get未命中时返回 (nil, false, nil)
type Store interface {
	Get(ctx context.Context, key string) (*Entry, bool, error)
	Put(ctx context.Context, key string, entry *Entry) error
	Delete(ctx context.Context, key string) error
}

// IsStale 判断条目是否需要刷新
// force为true时无论新旧都视为过期;maxAge<=0表示永不过期
func IsStale(entry *Entry, maxAge time.Duration, force bool, now time.Time) bool {
	if entry == nil || force {
		return true
	}
	if maxAge <= 0 {
		return false
	}
	return now.Sub(entry.CreatedAt) > maxAge
}
