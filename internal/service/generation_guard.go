package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// GenerationGuard asegura una sola generación en vuelo por conversación.
// Acquire devuelve un token; ok=false indica que otra generación ya lo tiene.
type GenerationGuard interface {
	Acquire(ctx context.Context, conversationID string) (token string, ok bool, err error)
	Release(ctx context.Context, conversationID, token string) error
}

type localGenerationGuard struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]localLease
}

type localLease struct {
	token   string
	expires time.Time
}

// NewLocalGenerationGuard sirve para un solo proceso. El TTL libera locks huérfanos.
func NewLocalGenerationGuard(ttl time.Duration) GenerationGuard {
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	return &localGenerationGuard{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]localLease),
	}
}

func (g *localGenerationGuard) Acquire(_ context.Context, conversationID string) (string, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.now()
	if lease, held := g.items[conversationID]; held && now.Before(lease.expires) {
		return "", false, nil
	}
	token := uuid.NewString()
	g.items[conversationID] = localLease{token: token, expires: now.Add(g.ttl)}
	return token, true, nil
}

func (g *localGenerationGuard) Release(_ context.Context, conversationID, token string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if lease, held := g.items[conversationID]; held && lease.token == token {
		delete(g.items, conversationID)
	}
	return nil
}

// Solo borra si el token sigue siendo el nuestro.
const redisReleaseLockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

type redisLockClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

type redisGenerationGuard struct {
	client redisLockClient
	ttl    time.Duration
	prefix string
}

// NewRedisGenerationGuard comparte el lock entre réplicas del servicio.
func NewRedisGenerationGuard(client *redis.Client, ttl time.Duration) GenerationGuard {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	return &redisGenerationGuard{
		client: client,
		ttl:    ttl,
		prefix: "conversation:generating:",
	}
}

func (g *redisGenerationGuard) Acquire(ctx context.Context, conversationID string) (string, bool, error) {
	if strings.TrimSpace(conversationID) == "" {
		return "", false, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()

	token := uuid.NewString()
	ok, err := g.client.SetNX(ctx, g.prefix+conversationID, token, g.ttl).Result()
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}
	return token, true, nil
}

func (g *redisGenerationGuard) Release(ctx context.Context, conversationID, token string) error {
	if strings.TrimSpace(conversationID) == "" || token == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 500*time.Millisecond)
	defer cancel()
	return g.client.Eval(ctx, redisReleaseLockScript, []string{g.prefix + conversationID}, token).Err()
}
