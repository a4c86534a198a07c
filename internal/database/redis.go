package database

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ruralpay/expense-tracker/internal/config"
	"github.com/sirupsen/logrus"
)

// InitRedis returns a connected client, or nil when Redis is unreachable.
func InitRedis(cfg config.RedisConfig, log logrus.FieldLogger) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis connection failed, continuing without Redis")
		rdb.Close()
		return nil
	}

	log.Info("Redis connection established")
	return rdb
}
