package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether another request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a fixed-window limiter local to one process.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		period:  period,
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	win, ok := l.windows[key]
	if !ok || !now.Before(win.resetAt) {
		// Drop expired windows so idle clients do not accumulate.
		for k, w := range l.windows {
			if !now.Before(w.resetAt) {
				delete(l.windows, k)
			}
		}
		win = &window{resetAt: now.Add(l.period)}
		l.windows[key] = win
	}

	if win.count >= l.limit {
		return false, nil
	}
	win.count++
	return true, nil
}

// RedisLimiter shares fixed windows between replicas through Redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	period time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		period: period,
		prefix: "freelancehub:ratelimit:",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	slot := l.now().UnixNano() / int64(l.period)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, l.period)
		return nil
	})
	if err != nil {
		return false, err
	}

	return incr.Val() <= int64(l.limit), nil
}

// RateLimit answers 429 once the client IP exceeds the limiter's window.
// Limiter failures let the request through.
func RateLimit(limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				slog.Warn("rate limiter unavailable", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				writeError(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
