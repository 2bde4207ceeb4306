package contracts

import (
	"context"
	"time"
)

// FolderInfo 媒体库分类(root下的子文件夹)
type FolderInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ImageInfo 返回给前端的图片信息
type ImageInfo struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Height    int    `json:"height"`
	Width     int    `json:"width"`
	Folder    string `json:"folder"` // 分类名,即folder路径的第二段
	Name      string `json:"name"`   // public_id的最后一段
}

// InvalidationTarget 手动失效的目标
type InvalidationTarget string

const (
	InvalidateTypes  InvalidationTarget = "types"
	InvalidateImages InvalidationTarget = "images"
	InvalidateAll    InvalidationTarget = "all"
)

// AllTypesKey getTypes不过滤时使用的key
const AllTypesKey = "all"

// CacheStats 单个缓存命名空间的运行状态
type CacheStats struct {
	Namespace        string    `json:"namespace"`
	Dirty            bool      `json:"dirty"`
	Hits             int64     `json:"hits"`
	Misses           int64     `json:"misses"`
	StaleHits        int64     `json:"stale_hits"`
	Refreshes        int64     `json:"refreshes"`
	RefreshErrors    int64     `json:"refresh_errors"`
	LastRefresh      time.Time `json:"last_refresh,omitempty"`
	LastRefreshHuman string    `json:"last_refresh_human,omitempty"`
}

// MediaService 媒体查询业务接口
type MediaService interface {
	// GetTypes 列出分类,key为空或"all"时不过滤,否则按名称忽略大小写精确匹配
	GetTypes(ctx context.Context, key string) ([]FolderInfo, error)
	// GetImages 列出一页图片,key非空时只保留该分类下的图片
	GetImages(ctx context.Context, key, cursor string) ([]ImageInfo, error)
	// Invalidate 标记缓存失效,下一次访问强制刷新
	Invalidate(target InvalidationTarget) error
	// CacheStats 各缓存命名空间的状态
	CacheStats() []CacheStats
}
