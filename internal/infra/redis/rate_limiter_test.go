//go:build !integration

package redis

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterAllowUpToLimit(t *testing.T) {
	ctx := context.Background()
	rl := NewRateLimiter(newFakeRedis())
	key := OTPSendKey("a@b.com")

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("allow %d: %v", i, err)
		}
		if !ok {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	ok, err := rl.Allow(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("allow over limit: %v", err)
	}
	if ok {
		t.Fatal("fourth request should be rejected")
	}
}
