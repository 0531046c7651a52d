package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/appointa/appointa/logger"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func Init(addr string) {
	Client = redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	if _, err := Client.Ping(Ctx).Result(); err != nil {
		logger.L.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	logger.L.Info("Connected to Redis")
}
