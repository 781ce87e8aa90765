package bootstrap

import (
	"context"

	"cabinet-keeper/internal/infra/bookmarkcache"
	"cabinet-keeper/internal/infra/kvstate"
	"cabinet-keeper/internal/pkg/config"
	"cabinet-keeper/internal/pkg/redislock"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedisClient,
		redislock.New,
		kvstate.NewMarkerStore,
		kvstate.NewResultStore,
		NewBookmarkCache,
	),
)

func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}

func NewBookmarkCache(client *redis.Client, cfg config.Config) *bookmarkcache.Cache {
	return bookmarkcache.New(client, cfg.Rental.BookmarkCacheTTL)
}
