package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/models"
	"github.com/jackc/pgerrcode"
)

// itemRepository is the PostgreSQL-backed implementation of [ItemRepository].
// It executes all item CRUD operations against the "items" table using the
// embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced
// with structured fields (user_email, item_no).
type itemRepository struct {
	*DB
	logger *logger.Logger
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		DB:     db,
		logger: logger,
	}
}

// ItemsByOwner retrieves every item owned by the given user, ordered by
// item number.
//
// Returns an empty slice when the user owns no items.
func (r *itemRepository) ItemsByOwner(ctx context.Context, email string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := r.DB.QueryContext(ctx, itemsByOwner, email)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "itemRepository.ItemsByOwner").
			Str("user_email", email).
			Msg("failed to execute query for listing items")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	items := make([]models.Item, 0, 50)

	for rows.Next() {
		var item models.Item

		scanErr := rows.Scan(
			&item.ID,
			&item.UserEmail,
			&item.ItemNo,
			&item.Name,
			&item.Cost,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "itemRepository.ItemsByOwner").
				Str("user_email", email).
				Msg("failed to scan item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "itemRepository.ItemsByOwner").
			Str("user_email", email).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// CreateItem persists a new item record and returns the fully populated
// [models.Item] with server-assigned fields (ID, CreatedAt, UpdatedAt).
// The item number must already be assigned by the sequence counter.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on (user_email, item_no) →
//     [ErrItemAlreadyExists].
//   - Any other driver-level error → classified via [DB.wrapDBError].
func (r *itemRepository) CreateItem(ctx context.Context, item models.Item) (models.Item, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, createItem, item.UserEmail, item.ItemNo, item.Name, item.Cost)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "itemRepository.CreateItem").
			Str("user_email", item.UserEmail).
			Int64("item_no", item.ItemNo).
			Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Item{}, ErrItemAlreadyExists
		default:
			return models.Item{}, r.DB.wrapDBError(err)
		}
	}

	if err := row.Scan(&item.ID, &item.UserEmail, &item.ItemNo, &item.Name, &item.Cost, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Item{}, ErrItemAlreadyExists
		}
		log.Err(err).
			Str("func", "itemRepository.CreateItem").
			Str("user_email", item.UserEmail).
			Int64("item_no", item.ItemNo).
			Msg("error: scanning error")
		return models.Item{}, err
	}

	return item, nil
}

// UpdateItem rewrites the label and/or cost of the item addressed by
// (update.Email, update.ID) and returns the updated record.
//
// Error handling:
//   - Query construction failure → wrapped [ErrBuildingSQLQuery].
//   - No matching item ([sql.ErrNoRows]) → [ErrItemNotFound].
//   - Any other driver-level error → classified via [DB.wrapDBError].
func (r *itemRepository) UpdateItem(ctx context.Context, update models.UpdateItemRequest) (models.Item, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateItemQuery(update)
	if err != nil {
		log.Err(err).
			Str("func", "itemRepository.UpdateItem").
			Str("user_email", update.Email).
			Int64("item_no", update.ID).
			Msg("failed to build update query")
		return models.Item{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.Item
	row := r.DB.QueryRowContext(ctx, query, args...)

	if rowErr := row.Err(); rowErr != nil {
		log.Err(rowErr).
			Str("func", "itemRepository.UpdateItem").
			Str("user_email", update.Email).
			Int64("item_no", update.ID).
			Msg("error: row is nil")
		return models.Item{}, r.DB.wrapDBError(rowErr)
	}

	if scanErr := row.Scan(&item.ID, &item.UserEmail, &item.ItemNo, &item.Name, &item.Cost, &item.CreatedAt, &item.UpdatedAt); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(scanErr).
			Str("func", "itemRepository.UpdateItem").
			Str("user_email", update.Email).
			Int64("item_no", update.ID).
			Msg("error: scanning error")
		return models.Item{}, scanErr
	}

	return item, nil
}

// DeleteItem removes the item addressed by (email, itemNo) and returns the
// deleted record. The consumed item number is not reclaimed.
//
// Error handling:
//   - No matching item ([sql.ErrNoRows]) → [ErrItemNotFound].
//   - Any other driver-level error → classified via [DB.wrapDBError].
func (r *itemRepository) DeleteItem(ctx context.Context, email string, itemNo int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	var item models.Item
	row := r.DB.QueryRowContext(ctx, deleteItem, email, itemNo)

	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "itemRepository.DeleteItem").
			Str("user_email", email).
			Int64("item_no", itemNo).
			Msg("error: row is nil")
		return models.Item{}, r.DB.wrapDBError(err)
	}

	if err := row.Scan(&item.ID, &item.UserEmail, &item.ItemNo, &item.Name, &item.Cost, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, ErrItemNotFound
		}
		log.Err(err).
			Str("func", "itemRepository.DeleteItem").
			Str("user_email", email).
			Int64("item_no", itemNo).
			Msg("error: scanning error")
		return models.Item{}, err
	}

	return item, nil
}
