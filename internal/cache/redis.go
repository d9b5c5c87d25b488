package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/calmharbor/counsel-api/internal/config"
)

func NewRedis(cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// cache é opcional: sem redis o portal segue direto no banco
		log.Warn("redis unavailable, check-in cache disabled", zap.Error(err))
	}

	return client
}
