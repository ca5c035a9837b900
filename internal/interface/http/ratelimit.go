package http

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/valkey-io/valkey-go"
	"golang.org/x/time/rate"

	"github.com/yanqian/text-insights/internal/infra/config"
)

// RateLimiter decides whether the caller identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// MemoryRateLimiter keeps one token bucket per client in process memory.
type MemoryRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemoryRateLimiter builds a limiter refilling RequestsPerMinute tokens per minute.
func NewMemoryRateLimiter(cfg config.RateLimitConfig) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(cfg.RequestsPerMinute) / 60),
		burst:    cfg.Burst,
		ttl:      5 * time.Minute,
		now:      time.Now,
	}
}

// Allow consumes one token for key.
func (l *MemoryRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.cleanupLocked(now)
	return v.limiter.AllowN(now, 1), nil
}

func (l *MemoryRateLimiter) cleanupLocked(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.ttl {
			delete(l.visitors, key)
		}
	}
}

// ValkeyRateLimiter counts requests per client in fixed one minute windows
// shared by every replica.
type ValkeyRateLimiter struct {
	client valkey.Client
	prefix string
	limit  int64
	window time.Duration
	now    func() time.Time
}

// NewValkeyRateLimiter builds the shared limiter. Burst is added on top of the per minute budget.
func NewValkeyRateLimiter(client valkey.Client, cfg config.RateLimitConfig, prefix string) *ValkeyRateLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &ValkeyRateLimiter{
		client: client,
		prefix: prefix,
		limit:  int64(cfg.RequestsPerMinute + cfg.Burst),
		window: time.Minute,
		now:    time.Now,
	}
}

// Allow increments the window counter for key.
func (l *ValkeyRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().Unix() / int64(l.window.Seconds())
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket)

	count, err := l.client.Do(ctx, l.client.B().Incr().Key(redisKey).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("increment rate counter: %w", err)
	}
	if count == 1 {
		ttl := int64(l.window.Seconds()) + 1
		if err := l.client.Do(ctx, l.client.B().Expire().Key(redisKey).Seconds(ttl).Build()).Error(); err != nil {
			return false, fmt.Errorf("expire rate counter: %w", err)
		}
	}
	return count <= l.limit, nil
}

type allowAll struct{}

func (allowAll) Allow(context.Context, string) (bool, error) { return true, nil }

// NoopRateLimiter admits every request.
func NoopRateLimiter() RateLimiter { return allowAll{} }
