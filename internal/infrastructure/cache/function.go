package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/easayliu/media-gallery/pkg/logger"
	"golang.org/x/sync/singleflight"
)

// LoaderFunc 被缓存的远程调用
type LoaderFunc[A, V any] func(ctx context.Context, args A) (V, error)

// KeyFunc 由调用参数生成命名空间内的key,必须是纯函数
type KeyFunc[A any] func(args A) string

// StringKey 参数本身即为key
func StringKey(s string) string { return s }

// Options 缓存函数配置
type Options struct {
	// Name 命名空间,存储key为 Name + ":" + key
	Name string
	// MaxAge 条目最长有效期,<=0表示永不过期
	MaxAge time.Duration
	// SWR 过期后先返回旧值,后台刷新
	SWR bool
	// RefreshTimeout 单次刷新超时,<=0不设超时
	RefreshTimeout time.Duration
	Store          Store
	// Invalidator 可为nil
	Invalidator *Invalidator
	// Now 测试时注入时钟
	Now func() time.Time
}

// Function 带缓存的函数包装
//
// 同一个key同时最多只有一次刷新在进行:同步调用方共享结果,
// SWR模式下其余调用方直接拿到旧值。刷新失败不会写入或覆盖条目。
type Function[A, V any] struct {
	name           string
	maxAge         time.Duration
	swr            bool
	refreshTimeout time.Duration
	store          Store
	invalidator    *Invalidator
	now            func() time.Time
	loader         LoaderFunc[A, V]
	key            KeyFunc[A]

	group singleflight.Group
	stats Stats
}

// NewFunction 创建缓存函数
func NewFunction[A, V any](loader LoaderFunc[A, V], key KeyFunc[A], opts Options) *Function[A, V] {
	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Function[A, V]{
		name:           opts.Name,
		maxAge:         opts.MaxAge,
		swr:            opts.SWR,
		refreshTimeout: opts.RefreshTimeout,
		store:          store,
		invalidator:    opts.Invalidator,
		now:            now,
		loader:         loader,
		key:            key,
	}
}

func (f *Function[A, V]) Name() string {
	return f.name
}

func (f *Function[A, V]) Stats() StatsSnapshot {
	return f.stats.Snapshot()
}

// Get 按参数取值,必要时调用loader
func (f *Function[A, V]) Get(ctx context.Context, args A) (V, error) {
	key := f.key(args)
	storageKey := f.name + ":" + key

	cached, entry, ok := f.lookup(ctx, storageKey)
	if ok {
		if !IsStale(entry, f.maxAge, f.invalidator.IsDirty(), f.now()) {
			f.stats.hit()
			return cached, nil
		}
		if f.swr {
			f.stats.staleHit()
			f.refreshInBackground(ctx, args, key, storageKey)
			return cached, nil
		}
	} else {
		f.stats.miss()
	}

	return f.refresh(ctx, args, key, storageKey)
}

// lookup 读取并解码条目,存储异常按未命中处理
func (f *Function[A, V]) lookup(ctx context.Context, storageKey string) (V, *Entry, bool) {
	var value V
	entry, ok, err := f.store.Get(ctx, storageKey)
	if err != nil {
		logger.Warn("Cache store read failed, treating as miss", "namespace", f.name, "key", storageKey, "error", err)
		return value, nil, false
	}
	if !ok || entry == nil {
		return value, nil, false
	}
	if err := json.Unmarshal(entry.Value, &value); err != nil {
		logger.Warn("Cache entry decode failed, treating as miss", "namespace", f.name, "key", storageKey, "error", err)
		return value, nil, false
	}
	return value, entry, true
}

// refresh 同步刷新,同key的并发调用共享一次loader调用
// loader运行在脱离调用方取消的ctx上,某个调用方取消只影响它自己的返回
func (f *Function[A, V]) refresh(ctx context.Context, args A, key, storageKey string) (V, error) {
	flight := context.WithoutCancel(ctx)
	ch := f.group.DoChan(storageKey, func() (interface{}, error) {
		loadCtx, cancel := f.withRefreshTimeout(flight)
		defer cancel()
		return f.load(loadCtx, args, key, storageKey)
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			logger.Debug("Cache refresh shared", "namespace", f.name, "key", key)
		}
		return res.Val.(V), nil
	}
}

// refreshInBackground SWR刷新,脱离请求的ctx
func (f *Function[A, V]) refreshInBackground(ctx context.Context, args A, key, storageKey string) {
	bg := context.WithoutCancel(ctx)
	go func() {
		if _, err := f.refresh(bg, args, key, storageKey); err != nil {
			logger.Warn("Background cache refresh failed, keeping stale entry",
				"namespace", f.name, "key", key, "error", err)
		}
	}()
}

func (f *Function[A, V]) withRefreshTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.refreshTimeout > 0 {
		return context.WithTimeout(ctx, f.refreshTimeout)
	}
	return ctx, func() {}
}

// load 在singleflight内执行
// 先复查一次存储:排队进来的调用可能在上一次刷新完成之后才到达
func (f *Function[A, V]) load(ctx context.Context, args A, key, storageKey string) (V, error) {
	if cached, entry, ok := f.lookup(ctx, storageKey); ok &&
		!IsStale(entry, f.maxAge, f.invalidator.IsDirty(), f.now()) {
		return cached, nil
	}

	value, err := f.loader(ctx, args)
	if err != nil {
		f.stats.failed()
		return value, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		f.stats.failed()
		var zero V
		return zero, fmt.Errorf("encode %s result: %w", f.name, err)
	}

	now := f.now()
	if err := f.store.Put(ctx, storageKey, &Entry{Value: data, CreatedAt: now}); err != nil {
		logger.Warn("Cache store write failed", "namespace", f.name, "key", storageKey, "error", err)
	}
	f.stats.refreshed(now)
	logger.Debug("Cache refreshed", "namespace", f.name, "key", key)
	return value, nil
}
