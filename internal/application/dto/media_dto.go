package dto

import "github.com/easayliu/media-gallery/internal/application/contracts"

// InvalidateCacheRequest 手动失效请求
type InvalidateCacheRequest struct {
	Target string `json:"target" binding:"required" example:"images"` // types/images/all
}

// InvalidateCacheResponse 手动失效结果
type InvalidateCacheResponse struct {
	Target string `json:"target"`
}

// CacheStatsResponse 缓存状态
type CacheStatsResponse struct {
	Namespaces []contracts.CacheStats `json:"namespaces"`
}
