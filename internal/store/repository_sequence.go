package store

import (
	"context"
	"fmt"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/redis/go-redis/v9"
)

// itemCounterKey formats the Redis key holding the item-number counter for
// one user identity. One integer entry per user, created implicitly on the
// first increment, never reset.
const itemCounterKey = "user:%s:itemCounter"

// sequenceRepository is the Redis-backed implementation of
// [SequenceRepository]. It relies on Redis INCR, which is atomic on the
// server side, so concurrent callers for the same identity always receive
// distinct, strictly increasing values starting from 1.
type sequenceRepository struct {
	rdb    *redis.Client
	logger *logger.Logger
}

// NewSequenceRepository constructs a [SequenceRepository] backed by the
// provided Redis client and logger.
func NewSequenceRepository(rdb *redis.Client, logger *logger.Logger) SequenceRepository {
	logger.Debug().Msg("creating sequence repository")
	return &sequenceRepository{
		rdb:    rdb,
		logger: logger,
	}
}

// NextItemNumber atomically increments and returns the per-user item-number
// counter. The first call for an identity returns 1.
//
// Consumed numbers are never reclaimed: when the caller aborts item creation
// after this call succeeded, the number is simply skipped and the owner's
// item numbering keeps a gap.
//
// Returns [ErrCounterUnavailable] (wrapped) when Redis cannot be reached;
// the caller must abort the item-creation flow without creating the record.
func (r *sequenceRepository) NextItemNumber(ctx context.Context, email string) (int64, error) {
	log := logger.FromContext(ctx)

	next, err := r.rdb.Incr(ctx, fmt.Sprintf(itemCounterKey, email)).Result()
	if err != nil {
		log.Err(err).
			Str("func", "sequenceRepository.NextItemNumber").
			Str("user_email", email).
			Msg("failed to increment item counter")
		return 0, fmt.Errorf("%w: %w", ErrCounterUnavailable, err)
	}

	return next, nil
}
