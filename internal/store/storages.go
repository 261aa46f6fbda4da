package store

import (
	"context"

	"github.com/itemkeeper/item-keeper/internal/config"
	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/migrations"
	"github.com/redis/go-redis/v9"
)

// Storages aggregates all repository implementations plus the underlying
// connections so the application can close them on shutdown.
type Storages struct {
	UserRepository     UserRepository
	ItemRepository     ItemRepository
	SequenceRepository SequenceRepository

	db      *DB
	counter *redis.Client
}

// NewStorages opens the PostgreSQL and Redis connections described by cfg,
// applies pending schema migrations, and wires all repositories.
//
// On any failure the already-opened connections are closed before the error
// is returned.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = migrations.Migrate(db.DB); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		return nil, err
	}

	counter, err := NewConnectCounter(ctx, cfg.Counter, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		ItemRepository:     NewItemRepository(db, log),
		SequenceRepository: NewSequenceRepository(counter, log),
		db:                 db,
		counter:            counter,
	}, nil
}

// Close releases the database and counter-store connections.
func (s *Storages) Close() error {
	var firstErr error

	if s.counter != nil {
		if err := s.counter.Close(); err != nil {
			firstErr = err
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
