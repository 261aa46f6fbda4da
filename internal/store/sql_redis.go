package store

import (
	"context"
	"fmt"
	"time"

	"github.com/itemkeeper/item-keeper/internal/config"
	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

// NewConnectCounter opens and pings the Redis connection backing the
// per-user item-number sequence counter.
func NewConnectCounter(ctx context.Context, cfg config.Counter, log *logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		log.Err(err).Str("func", "NewConnectCounter").Msg("error connecting counter store (ping)")
		return nil, fmt.Errorf("counter store ping: %w", err)
	}
	log.Info().Str("func", "NewConnectCounter").Msg("connected to counter store successfully")

	return rdb, nil
}
