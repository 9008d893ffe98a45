package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Counter считает обращения по ключу внутри окна и отдаёт остаток TTL.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type redisCounter struct {
	rdb *redis.Client
}

func (c *redisCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}

	// Первый запрос в окне, ставим время жизни ключу
	if count == 1 {
		c.rdb.Expire(ctx, key, window)
	}

	ttl, _ := c.rdb.TTL(ctx, key).Result()
	return count, ttl, nil
}

type RateLimiter struct {
	counter Counter
	prefix  string
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{counter: &redisCounter{rdb: client}, prefix: "rate_limit"}
}

func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s:%s", rl.prefix, keySuffix, c.ClientIP())

		count, ttl, err := rl.counter.Hit(c, key, window)
		if err != nil {
			// Отказ счётчика не должен блокировать логин.
			c.Next()
			return
		}

		if count > int64(limit) {
			retry := int(ttl.Seconds())
			if retry < 1 {
				retry = int(window.Seconds())
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": retry,
			})
			return
		}
		c.Next()
	}
}
