package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"security-quiz/internal/models"
)

// ErrCacheMiss means the key is absent; callers fall through to the store.
var ErrCacheMiss = errors.New("cache miss")

const attemptTTL = 24 * time.Hour

type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisCache{
		client: client,
		ctx:    context.Background(),
	}
}

// SetAttempt caches the latest attempt for an employee so the entry guard
// can refuse repeats without a database round trip.
func (c *RedisCache) SetAttempt(result *models.EmployeeResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	key := "attempt:" + result.EmployeeID
	return c.client.Set(c.ctx, key, data, attemptTTL).Err()
}

func (c *RedisCache) GetAttempt(employeeID string) (*models.EmployeeResult, error) {
	key := "attempt:" + employeeID
	data, err := c.client.Get(c.ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var result models.EmployeeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetTopPerformers replaces the ranked snapshot with the latest averages.
func (c *RedisCache) SetTopPerformers(scores map[string]float64) error {
	key := "top_performers"

	pipe := c.client.Pipeline()
	pipe.Del(c.ctx, key)
	for employeeID, average := range scores {
		pipe.ZAdd(c.ctx, key, &redis.Z{
			Score:  average,
			Member: employeeID,
		})
	}
	pipe.Expire(c.ctx, key, attemptTTL)

	_, err := pipe.Exec(c.ctx)
	return err
}

// GetTopPerformers returns employee ids ordered best first.
func (c *RedisCache) GetTopPerformers() ([]string, error) {
	key := "top_performers"

	members, err := c.client.ZRevRange(c.ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return members, nil
}
