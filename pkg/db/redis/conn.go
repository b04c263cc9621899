package redis

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

type Store struct {
	client *redis.Client
	ctx    context.Context
}

var rdb *Store

// InitRedis connects to Redis using the REDIS_* environment. Unlike the
// record store, Redis is optional: on any failure the caller is expected to
// keep running with event emission degraded to log-only.
func InitRedis(ctx context.Context) (*Store, error) {
	err := godotenv.Load()
	if err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	redisHost := os.Getenv("REDIS_HOST")
	redisPort := os.Getenv("REDIS_PORT")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	if redisHost == "" {
		return nil, fmt.Errorf("REDIS_HOST is not set")
	}

	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		redisDB, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB is not a number: %w", err)
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})

	_, err = client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	rdb = &Store{client, ctx}

	log.Println("Connected to Redis successfully")
	return rdb, nil
}
