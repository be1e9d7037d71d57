package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	userhttp "github.com/warungio/stockpilot/internal/user/delivery/http"
	"github.com/warungio/stockpilot/pkg/logger"
)

// RateLimiter implements sliding window rate limiting backed by Redis.
type RateLimiter struct {
	redis       *redis.Client
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(redisClient *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:       redisClient,
		maxRequests: maxRequests,
		window:      window,
	}
}

// Middleware enforces the limit per authenticated user, falling back
// to the remote address when the request is unauthenticated. Redis
// failures let the request through.
func (rl *RateLimiter) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identifier := r.RemoteAddr
		if userID, ok := userhttp.UserIDFromContext(r.Context()); ok {
			identifier = fmt.Sprintf("user:%d", userID)
		}

		allowed, remaining, resetTime, err := rl.checkLimit(r.Context(), identifier)
		if err != nil {
			logger.Logger.Error().
				Err(err).
				Str("identifier", identifier).
				Msg("Rate limiter error")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", resetTime.Unix()))

		if !allowed {
			logger.Logger.Warn().
				Str("identifier", identifier).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":       "Rate limit exceeded",
				"message":     fmt.Sprintf("Too many requests. Try again in %v", time.Until(resetTime).Round(time.Second)),
				"retry_after": time.Until(resetTime).Seconds(),
			})
			return
		}

		next.ServeHTTP(w, r)
	}
}

// checkLimit counts requests in the sliding window.
func (rl *RateLimiter) checkLimit(ctx context.Context, identifier string) (bool, int, time.Time, error) {
	key := fmt.Sprintf("ratelimit:%s", identifier)
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart.UnixNano()))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	remaining := rl.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}
	resetTime := now.Add(rl.window)
	allowed := count < int64(rl.maxRequests)

	return allowed, remaining, resetTime, nil
}
