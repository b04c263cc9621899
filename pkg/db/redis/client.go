package redis

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Client returns the shared store, or nil when Redis was never initialized.
func Client() *Store {
	return rdb
}

func (r *Store) LPush(key string, value string) error {
	err := r.client.LPush(r.ctx, key, value).Err()
	if err != nil {
		return fmt.Errorf("lpush %s: %w", key, err)
	}
	return nil
}

func (r *Store) ZAdd(key string, member string, score float64) error {
	add := r.client.ZAdd(r.ctx, key, redis.Z{
		Score:  score,
		Member: member,
	})

	return add.Err()
}

func (r *Store) ZRem(key string, member string) error {
	remove := r.client.ZRem(r.ctx, key, member)

	return remove.Err()
}

func (r *Store) ZScore(key string, member string) (float64, error) {
	result, err := r.client.ZScore(r.ctx, key, member).Result()

	return result, err
}

func (r *Store) ZRangeByScoreWithScores(key string, min string, max string) ([]redis.Z, error) {
	entries, err := r.client.ZRangeByScoreWithScores(r.ctx, key, &redis.ZRangeBy{
		Min: min,
		Max: max,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("zrangebyscore %s: %w", key, err)
	}

	return entries, nil
}
