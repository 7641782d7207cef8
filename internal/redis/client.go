package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// NextOrderSequence returns the next value of the per-day order counter.
// INCR is atomic, so concurrent order creations on the same day can never
// observe the same sequence number. The key expires after two days; the
// order number's unique constraint in the database is the final backstop.
func (c *Client) NextOrderSequence(date time.Time) (int64, error) {
	ctx := context.Background()
	key := "order_seq:" + date.Format("060102")

	seq, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment order sequence: %w", err)
	}
	if seq == 1 {
		c.rdb.Expire(ctx, key, 48*time.Hour)
	}
	return seq, nil
}

// Allow implements a sliding-window rate limit over a sorted set keyed by
// user and action. It returns whether the request may proceed and, when it
// may not, how long until the oldest tracked request leaves the window.
func (c *Client) Allow(key string, max int, window time.Duration) (bool, time.Duration, error) {
	ctx := context.Background()
	now := time.Now()
	windowStart := now.Add(-window)
	rlKey := "ratelimit:" + key

	if err := c.rdb.ZRemRangeByScore(ctx, rlKey, "0", fmt.Sprintf("%d", windowStart.UnixNano())).Err(); err != nil {
		return false, 0, fmt.Errorf("failed to trim rate limit window: %w", err)
	}

	count, err := c.rdb.ZCard(ctx, rlKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to count rate limit window: %w", err)
	}

	if count >= int64(max) {
		oldest, err := c.rdb.ZRangeWithScores(ctx, rlKey, 0, 0).Result()
		if err != nil || len(oldest) == 0 {
			return false, window, nil
		}
		oldestAt := time.Unix(0, int64(oldest[0].Score))
		return false, oldestAt.Add(window).Sub(now), nil
	}

	member := fmt.Sprintf("%d", now.UnixNano())
	if err := c.rdb.ZAdd(ctx, rlKey, &redis.Z{Score: float64(now.UnixNano()), Member: member}).Err(); err != nil {
		return false, 0, fmt.Errorf("failed to record rate limit entry: %w", err)
	}
	c.rdb.Expire(ctx, rlKey, window)

	return true, 0, nil
}

// Temp-data helpers back the payment handshake cache: the intent created at
// initiation is parked here until the payment is confirmed.
func (c *Client) SetTempData(key string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal temp data: %w", err)
	}

	return c.rdb.Set(ctx, "temp:"+key, jsonData, ttl).Err()
}

func (c *Client) GetTempData(key string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "temp:"+key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("temp data not found")
		}
		return fmt.Errorf("failed to get temp data: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

func (c *Client) DeleteTempData(key string) error {
	ctx := context.Background()
	return c.rdb.Del(ctx, "temp:"+key).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
