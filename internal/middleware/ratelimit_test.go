package middleware

import (
	"fmt"
	"testing"
	"time"
)

func TestRateLimiter_AllowWithinLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    5,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 5; i++ {
		if !rl.Allow("ip:10.0.0.1") {
			t.Errorf("request %d should be allowed", i+1)
		}
	}
}

func TestRateLimiter_BlockOverLimit(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    3,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	for i := 0; i < 3; i++ {
		rl.Allow("ip:10.0.0.1")
	}

	if rl.Allow("ip:10.0.0.1") {
		t.Error("request over the limit should be blocked")
	}
}

func TestRateLimiter_IndependentKeys(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    1,
		Window: time.Minute,
		KeyFn:  KeyByIP,
	})

	if !rl.Allow("ip:10.0.0.1") {
		t.Error("first key should be allowed")
	}
	if !rl.Allow("ip:10.0.0.2") {
		t.Error("second key should have its own window")
	}
	if rl.Allow("ip:10.0.0.1") {
		t.Error("first key should be exhausted")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{
		Max:    1,
		Window: 20 * time.Millisecond,
		KeyFn:  KeyByIP,
	})

	if !rl.Allow("ip:10.0.0.1") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("ip:10.0.0.1") {
		t.Fatal("second request in window should be blocked")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("ip:10.0.0.1") {
		t.Error("request after window reset should be allowed")
	}
}

func TestRateLimiter_PresetConfigs(t *testing.T) {
	cases := []struct {
		name string
		rl   *RateLimiter
		max  int
	}{
		{"feed", NewFeedRateLimiter(), 100},
		{"clip_create", NewClipCreateRateLimiter(), 10},
		{"clip_delete", NewClipDeleteRateLimiter(), 5},
		{"like", NewLikeRateLimiter(), 30},
		{"comment", NewCommentRateLimiter(), 10},
		{"stats", NewStatsRateLimiter(), 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			key := fmt.Sprintf("user:%s", tc.name)
			for i := 0; i < tc.max; i++ {
				if !tc.rl.Allow(key) {
					t.Fatalf("request %d of %d should be allowed", i+1, tc.max)
				}
			}
			if tc.rl.Allow(key) {
				t.Errorf("request %d should exceed the limit", tc.max+1)
			}
			if tc.rl.config.Window != time.Minute {
				t.Errorf("window = %v, want 1m", tc.rl.config.Window)
			}
		})
	}
}
