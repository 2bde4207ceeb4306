package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_QPS(t *testing.T) {
	limiter := NewRateLimiter(5)
	if qps := limiter.GetQPS(); qps != 5 {
		t.Errorf("expected QPS 5, got %d", qps)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// 桶大小等于QPS,前5个请求可以立即通过
	for i := 0; i < 5; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("request %d should pass within burst: %v", i, err)
		}
	}
	if err := limiter.Wait(ctx); err == nil {
		t.Error("request beyond burst should not get a token before the deadline")
	}
}

func TestRateLimiter_Unlimited(t *testing.T) {
	limiter := NewRateLimiter(0)
	if qps := limiter.GetQPS(); qps != 0 {
		t.Errorf("expected QPS 0 (unlimited), got %d", qps)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	for i := 0; i < 100; i++ {
		if err := limiter.Wait(ctx); err != nil {
			t.Fatalf("unlimited limiter should pass all requests: %v", err)
		}
	}
}

func TestRateLimiter_WaitCanceled(t *testing.T) {
	limiter := NewRateLimiter(1)
	if err := limiter.Wait(context.Background()); err != nil {
		t.Fatalf("first request should pass: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// 下一个令牌要1秒后才有,超时的ctx应该直接返回错误
	if err := limiter.Wait(ctx); err == nil {
		t.Error("expected error when context deadline is shorter than token wait")
	}
}
