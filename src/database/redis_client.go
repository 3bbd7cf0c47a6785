package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
	RedisCtx    = context.Background()
)

// InitRedis creates the shared Redis client. Redis is optional in
// development: when REDIS_URI is unset the client stays nil and callers fall
// back to uncached behavior.
func InitRedis() {
	RedisURI = os.Getenv("REDIS_URI")
	if RedisURI == "" {
		log.Println("REDIS_URI not set, running without Redis")
		return
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr: RedisURI,
	})
	if _, err := RedisClient.Ping(RedisCtx).Result(); err != nil {
		log.Println("Redis ping failed, running without Redis:", err)
		RedisClient = nil
		return
	}
	log.Println("Redis connected")
}
