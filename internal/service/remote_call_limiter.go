package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RemoteCallLimiter acota las llamadas al modelo remoto por persona.
// Si niega, el motor responde con la heurística local.
type RemoteCallLimiter interface {
	Allow(key string) bool
}

const redisRemoteCallAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisRemoteCallLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

// NewRedisRemoteCallLimiter devuelve nil si no hay cliente o si max <= 0 (sin límite).
func NewRedisRemoteCallLimiter(client *redis.Client, window time.Duration, max int) RemoteCallLimiter {
	if client == nil || max <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return &redisRemoteCallLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "persona:remote:rl:",
	}
}

func (l *redisRemoteCallLimiter) Allow(key string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		normalizedKey = "anonymous"
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisRemoteCallAllowScript, []string{l.prefix + normalizedKey}, seconds).Int()
	if err != nil {
		// fail-open: Redis caído no debe cortar la práctica
		return true
	}
	return count <= l.max
}

type memoryRemoteCallLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	now     func() time.Time
	windows map[string]memoryWindow
}

type memoryWindow struct {
	start time.Time
	count int
}

// NewMemoryRemoteCallLimiter es la variante de un solo proceso, con ventana fija.
func NewMemoryRemoteCallLimiter(window time.Duration, max int) RemoteCallLimiter {
	if max <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return &memoryRemoteCallLimiter{
		window:  window,
		max:     max,
		now:     time.Now,
		windows: make(map[string]memoryWindow),
	}
}

func (l *memoryRemoteCallLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	normalizedKey := strings.ToLower(strings.TrimSpace(key))
	if normalizedKey == "" {
		normalizedKey = "anonymous"
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[normalizedKey]
	if !ok || now.Sub(w.start) >= l.window {
		w = memoryWindow{start: now}
	}
	w.count++
	l.windows[normalizedKey] = w
	return w.count <= l.max
}
