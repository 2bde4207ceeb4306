package cache

import "sync/atomic"

// Invalidator 手动失效标记,每个缓存函数一个
// 标记为dirty后下一次访问必然刷新,由被包装函数在成功后调用Clear
type Invalidator struct {
	name  string
	dirty atomic.Bool
}

// NewInvalidator 创建失效标记,dirty为初始状态
func NewInvalidator(name string, dirty bool) *Invalidator {
	inv := &Invalidator{name: name}
	inv.dirty.Store(dirty)
	return inv
}

func (i *Invalidator) Name() string {
	if i == nil {
		return ""
	}
	return i.name
}

func (i *Invalidator) MarkDirty() {
	if i != nil {
		i.dirty.Store(true)
	}
}

func (i *Invalidator) Clear() {
	if i != nil {
		i.dirty.Store(false)
	}
}

// IsDirty nil标记永远返回false
func (i *Invalidator) IsDirty() bool {
	return i != nil && i.dirty.Load()
}
