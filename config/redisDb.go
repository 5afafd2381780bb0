package config

import (
	"context"
	"log"
	"os"
	"sync/atomic"

	"github.com/bsm/redislock"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Written once by ConnectRedis after the HTTP listener is up, read from
// request goroutines.
var (
	rdb    atomic.Pointer[redis.Client]
	locker atomic.Pointer[redislock.Client]
)
var redisCtx = context.Background()

func GetRedisDB() *redis.Client {
	return rdb.Load()
}

// GetRedisLock returns the cross-instance lock client, or nil when redis
// is not configured. Callers must treat the lock as best-effort only.
func GetRedisLock() *redislock.Client {
	return locker.Load()
}

func init() {
	godotenv.Load()
}

// ConnectRedis connects and sets the global Redis client + lock client.
// Redis is optional here: when REDIS_ADDRESS is unset the backend runs
// without it (payment serialization falls back to DB row locks alone).
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		log.Printf("REDIS_ADDRESS not set; running without redis")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
		PoolSize: 100,
	})
	if err := client.Ping(redisCtx).Err(); err != nil {
		log.Printf("failed to connect redis (addr=%s): %v; running without redis", redisAddr, err)
		return
	}
	rdb.Store(client)
	locker.Store(redislock.New(client))
	log.Printf("connected to redis (addr=%s)", redisAddr)
}
