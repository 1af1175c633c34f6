package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStorage implements Storage using Redis, so the limit holds across
// multiple server instances. Token buckets are stored as Redis hashes with
// automatic expiration based on the window duration, and a Lua script keeps
// refill and consume atomic.
type RedisStorage struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStorage creates a new Redis-based rate limiter storage.
// keyPrefix is optional and defaults to "rate_limit:" if empty.
func NewRedisStorage(client *redis.Client, keyPrefix string) *RedisStorage {
	if keyPrefix == "" {
		keyPrefix = "rate_limit:"
	}

	return &RedisStorage{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Allow checks if a request is allowed and consumes a token if available.
func (r *RedisStorage) Allow(ctx context.Context, key string, limit Limit) (bool, error) {
	bucketKey := r.keyPrefix + key
	capacity := float64(limit.Requests)
	refillRate := capacity / limit.Window.Seconds()
	now := time.Now().UnixNano()

	// The script atomically:
	// 1. Gets or initializes bucket state
	// 2. Refills tokens based on elapsed time
	// 3. Consumes a token if available
	// 4. Updates bucket state and expiration
	script := `
		local key = KEYS[1]
		local capacity = tonumber(ARGV[1])
		local refillRate = tonumber(ARGV[2])
		local now = tonumber(ARGV[3])
		local tokensToConsume = tonumber(ARGV[4])
		local windowSeconds = tonumber(ARGV[5])

		local bucketData = redis.call('HMGET', key, 'tokens', 'lastRefill')
		local tokensStr = bucketData[1]
		local lastRefillStr = bucketData[2]

		local tokens
		local lastRefill
		if tokensStr == false or tokensStr == nil then
			tokens = capacity
			lastRefill = now
		else
			tokens = tonumber(tokensStr)
			if tokens == nil then
				tokens = capacity
			end
			lastRefill = tonumber(lastRefillStr)
			if lastRefill == nil then
				lastRefill = now
			end
		end

		local elapsed = (now - lastRefill) / 1000000000

		if elapsed > 0 then
			local tokensToAdd = elapsed * refillRate
			tokens = math.min(capacity, tokens + tokensToAdd)
		end

		if tokens >= tokensToConsume then
			tokens = tokens - tokensToConsume
			redis.call('HSET', key, 'tokens', tostring(tokens), 'lastRefill', tostring(now))
			redis.call('EXPIRE', key, math.ceil(windowSeconds * 1.1))
			return 1
		else
			redis.call('HSET', key, 'tokens', tostring(tokens), 'lastRefill', tostring(now))
			redis.call('EXPIRE', key, math.ceil(windowSeconds * 1.1))
			return 0
		end
	`

	result, err := r.client.Eval(ctx, script, []string{bucketKey},
		capacity,
		refillRate,
		now,
		1.0,
		limit.Window.Seconds(),
	).Result()

	if err != nil {
		return false, fmt.Errorf("redis rate limit check failed: %w", err)
	}

	allowed := result.(int64) == 1
	return allowed, nil
}

// Ping checks if the Redis connection is healthy.
func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis client connection.
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
