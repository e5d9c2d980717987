package middleware

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tempo/utils"
)

// RateLimitMiddleware applies a fixed-window limit per client IP, backed by
// redis so the window survives restarts and is shared between replicas.
// When redis is unavailable the limiter fails open: availability of the API
// matters more than the limit.
func RateLimitMiddleware(client *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.Printf("Rate limiter unavailable, allowing request: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			utils.TooManyRequests(c, "Too many requests, try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}

// NewRedisClient connects to redis for the rate limiter. Returns nil when
// the URL is unset or the connection fails, which disables limiting.
func NewRedisClient(redisURL string) *redis.Client {
	if redisURL == "" {
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Invalid REDIS_URL, rate limiting disabled: %v", err)
		return nil
	}

	client := redis.NewClient(opts)

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis, rate limiting disabled: %v", err)
		return nil
	}

	return client
}
