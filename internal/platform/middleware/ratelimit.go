// Copyright (c) 2026 Holocron. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"holocron/internal/platform/constants"
	"holocron/internal/platform/ctxutil"
)

// # Rate Limiting
//
// Two implementations share the same middleware surface:
//
//   - Redis fixed-window counters, so throttling state survives restarts and
//     is shared across replicas.
//   - An in-process token bucket per IP, used when no Redis client is
//     configured (single-instance and local development deployments).

type rateLimitClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type localLimiter struct {
	mu      sync.Mutex
	clients map[string]*rateLimitClient
}

// RateLimit limits requests per client IP.
//
// When rdb is non-nil, an INCR+EXPIRE fixed window in Redis is consulted;
// Redis outages fail open so that a throttling dependency can never take the
// API down. When rdb is nil, a per-IP token bucket held in process memory is
// used instead, with a background sweep of idle entries.
func RateLimit(ctx context.Context, rdb *redis.Client) func(http.Handler) http.Handler {
	if rdb != nil {
		return redisRateLimit(rdb)
	}
	return localRateLimit(ctx)
}

// redisRateLimit counts requests per IP in a fixed Redis window.
func redisRateLimit(rdb *redis.Client) func(http.Handler) http.Handler {
	// Window budget derived from the steady-state RPS allowance plus burst.
	maxPerWindow := int64(constants.DefaultRateLimitRPS*constants.RateLimitWindow.Seconds()) + int64(constants.DefaultRateLimitBurst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			clientIP := RealIP(request)
			key := constants.RedisPrefixRateLimit + clientIP

			pipe := rdb.Pipeline()
			incr := pipe.Incr(request.Context(), key)
			pipe.Expire(request.Context(), key, constants.RateLimitWindow)

			if _, err := pipe.Exec(request.Context()); err != nil {
				// Fail open: a degraded limiter must not reject traffic.
				ctxutil.GetLogger(request.Context()).Warn("rate_limit_redis_unavailable")
				next.ServeHTTP(writer, request)
				return
			}

			if incr.Val() > maxPerWindow {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// localRateLimit applies a per-IP token bucket held in process memory.
func localRateLimit(ctx context.Context) func(http.Handler) http.Handler {
	limiter := &localLimiter{clients: make(map[string]*rateLimitClient)}

	// Background cleanup routine that respects context cancellation.
	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				limiter.mu.Lock()
				for ip, clientInfo := range limiter.clients {
					if time.Since(clientInfo.lastSeen) > constants.RateLimitClientTTL {
						delete(limiter.clients, ip)
					}
				}
				limiter.mu.Unlock()
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			clientIP := RealIP(request)

			limiter.mu.Lock()
			clientInfo, found := limiter.clients[clientIP]

			// Initialize a new bucket if this is a fresh IP
			if !found {
				clientInfo = &rateLimitClient{
					limiter: rate.NewLimiter(
						rate.Limit(constants.DefaultRateLimitRPS),
						constants.DefaultRateLimitBurst,
					),
				}
				limiter.clients[clientIP] = clientInfo
			}

			clientInfo.lastSeen = time.Now()
			allowed := clientInfo.limiter.Allow()
			limiter.mu.Unlock()

			if !allowed {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Rate limit exceeded")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
