package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimiter Cloudinary Admin API 请求限流器
// Admin API 按小时计配额,这里在客户端侧做平滑限流避免突发请求耗尽配额
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter 创建限流器,qps<=0表示不限制
func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(qps), qps)}
}

// Wait 阻塞直到获得令牌或ctx结束
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// GetQPS 当前QPS,0表示不限制
func (r *RateLimiter) GetQPS() int {
	limit := r.limiter.Limit()
	if limit == rate.Inf {
		return 0
	}
	return int(limit)
}
