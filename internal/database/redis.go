package database

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects a Redis client and verifies the connection.
func InitRedis(addr string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Error connecting to redis at %s: %q", addr, err)
	}
	return rdb
}
