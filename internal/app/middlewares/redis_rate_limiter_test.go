package middlewares

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLimiter(t *testing.T) (*RedisRateLimiter, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRateLimiter(client), server
}

func TestRedisRateLimiter_RefusesRequestPastLimit(t *testing.T) {
	limiter, _ := newTestRedisLimiter(t)
	limit := Rate{Requests: 3, Window: time.Minute}

	app := fiber.New()
	app.Get("/ping", NewRateLimitMiddleware(limiter).LimitByIP(limit), func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})

	send := func() *http.Response {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Real-IP", "198.51.100.4")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	for i, remaining := range []string{"2", "1", "0"} {
		resp := send()
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
		assert.Equal(t, "3", resp.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, remaining, resp.Header.Get("X-RateLimit-Remaining"))
	}

	resp := send()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "3", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
}

func TestRedisRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter, _ := newTestRedisLimiter(t)
	ctx := context.Background()
	limit := Rate{Requests: 1, Window: time.Minute}

	allowed, _ := limiter.Allow(ctx, "user:1", limit)
	assert.True(t, allowed)
	allowed, _ = limiter.Allow(ctx, "user:1", limit)
	assert.False(t, allowed)

	allowed, _ = limiter.Allow(ctx, "user:2", limit)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_Reset(t *testing.T) {
	limiter, server := newTestRedisLimiter(t)
	ctx := context.Background()
	limit := Rate{Requests: 1, Window: time.Minute}

	allowed, _ := limiter.Allow(ctx, "ip:203.0.113.9", limit)
	require.True(t, allowed)
	assert.True(t, server.Exists("hotel-audit:ratelimit:ip:203.0.113.9"))

	allowed, _ = limiter.Allow(ctx, "ip:203.0.113.9", limit)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "ip:203.0.113.9"))
	assert.False(t, server.Exists("hotel-audit:ratelimit:ip:203.0.113.9"))

	allowed, _ = limiter.Allow(ctx, "ip:203.0.113.9", limit)
	assert.True(t, allowed)
}

func TestRedisRateLimiter_FailsOpenWhenRedisIsDown(t *testing.T) {
	limiter, server := newTestRedisLimiter(t)
	server.Close()

	allowed, info := limiter.Allow(context.Background(), "user:1", Rate{Requests: 5, Window: time.Minute})
	assert.True(t, allowed)
	assert.Equal(t, 5, info.Remaining)
}
