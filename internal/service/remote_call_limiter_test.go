package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisRemoteCallLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisRemoteCallLimiter
		if !l.Allow("emp-1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("constructor without client or max", func(t *testing.T) {
		if NewRedisRemoteCallLimiter(nil, time.Minute, 3) != nil {
			t.Fatalf("expected nil limiter without client")
		}
		if NewRedisRemoteCallLimiter(redis.NewClient(&redis.Options{Addr: "localhost:0"}), time.Minute, 0) != nil {
			t.Fatalf("expected nil limiter when max is zero")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 2}
		l := &redisRemoteCallLimiter{client: mock, window: 2 * time.Minute, max: 3, prefix: "persona:remote:rl:"}
		if !l.Allow(" EMP-1 ") {
			t.Fatalf("expected allow when count <= max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "persona:remote:rl:emp-1" {
			t.Fatalf("unexpected key normalization, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != 120 {
			t.Fatalf("expected TTL seconds=120, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisRemoteCallAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("empty key shares anonymous bucket", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 1}
		l := &redisRemoteCallLimiter{client: mock, window: time.Minute, max: 1, prefix: "p:"}
		if !l.Allow("  ") {
			t.Fatalf("expected allow")
		}
		if mock.lastKeys[0] != "p:anonymous" {
			t.Fatalf("expected anonymous key, got %+v", mock.lastKeys)
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := &redisRemoteCallLimiter{client: &mockRedisEvaler{result: 4}, window: time.Minute, max: 3, prefix: "p:"}
		if l.Allow("emp-1") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisRemoteCallLimiter{client: &mockRedisEvaler{err: errors.New("redis down")}, window: time.Minute, max: 3, prefix: "p:"}
		if !l.Allow("emp-1") {
			t.Fatalf("expected fail-open on redis errors")
		}
	})
}

func TestRedisRemoteCallLimiter_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	l := NewRedisRemoteCallLimiter(client, time.Minute, 2)
	for i := 0; i < 2; i++ {
		if !l.Allow("emp-1") {
			t.Fatalf("call %d: expected allow", i+1)
		}
	}
	if l.Allow("emp-1") {
		t.Fatalf("expected third call to be denied")
	}
	if !l.Allow("emp-2") {
		t.Fatalf("expected independent bucket per key")
	}
	if ttl := mr.TTL("persona:remote:rl:emp-1"); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %s", ttl)
	}

	mr.FastForward(time.Minute + time.Second)
	if !l.Allow("emp-1") {
		t.Fatalf("expected allow after window expiry")
	}
}

func TestMemoryRemoteCallLimiter(t *testing.T) {
	if NewMemoryRemoteCallLimiter(time.Minute, 0) != nil {
		t.Fatalf("expected nil limiter when max is zero")
	}

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	l := NewMemoryRemoteCallLimiter(time.Minute, 2).(*memoryRemoteCallLimiter)
	l.now = func() time.Time { return now }

	if !l.Allow("emp-1") || !l.Allow("EMP-1") {
		t.Fatalf("expected first two calls allowed")
	}
	if l.Allow("emp-1") {
		t.Fatalf("expected third call denied")
	}
	if !l.Allow("emp-2") {
		t.Fatalf("expected independent bucket per key")
	}
	now = now.Add(time.Minute)
	if !l.Allow("emp-1") {
		t.Fatalf("expected new window to allow")
	}
}
