// internal/common/ratelimit/ratelimit.go
// Fixed-window rate limiting for the public token endpoints. Counters
// live in Redis when available so limits hold across instances; without
// Redis an in-memory window keeps single-instance deployments covered.

package ratelimit

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"github.com/hellonanny/hellonanny-backend/internal/common/utils"
)

// Limiter counts requests per key within a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Redis

type redisLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

func NewRedisLimiter(client *redis.Client, max int, window time.Duration) Limiter {
	return &redisLimiter{client: client, max: max, window: window}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(l.window.Seconds()))

	count, err := l.client.Incr(ctx, bucket).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit counter failed: %w", err)
	}
	if count == 1 {
		l.client.Expire(ctx, bucket, l.window)
	}
	return count <= int64(l.max), nil
}

// In-memory

type memoryLimiter struct {
	mu     sync.Mutex
	counts map[string]int
	start  time.Time
	max    int
	window time.Duration
}

func NewMemoryLimiter(max int, window time.Duration) Limiter {
	return &memoryLimiter{
		counts: make(map[string]int),
		start:  time.Now(),
		max:    max,
		window: window,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if time.Since(l.start) >= l.window {
		l.counts = make(map[string]int)
		l.start = time.Now()
	}

	l.counts[key]++
	return l.counts[key] <= l.max, nil
}

// Middleware limits by client IP. Limiter errors fail open: a broken
// Redis must not take the public endpoints down with it.
func Middleware(limiter Limiter) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err == nil && !allowed {
				utils.RespondWithError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
