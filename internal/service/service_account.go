package service

import (
	"context"
	"fmt"

	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/store"
	"github.com/itemkeeper/item-keeper/models"
)

// accountService is the concrete implementation of AccountService.
// It composes the item repository with the sequence repository: item numbers
// are drawn from the counter before the row is inserted, and a counter
// failure aborts the creation flow without touching the relational store.
type accountService struct {
	itemRepository     store.ItemRepository
	sequenceRepository store.SequenceRepository

	logger *logger.Logger
}

// NewAccountService constructs a new AccountService wired to the given
// repositories.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(itemRepository store.ItemRepository, sequenceRepository store.SequenceRepository, logger *logger.Logger) AccountService {
	return &accountService{
		itemRepository:     itemRepository,
		sequenceRepository: sequenceRepository,
		logger:             logger,
	}
}

// ListItems returns all items owned by the given user, ordered by item number.
func (a *accountService) ListItems(ctx context.Context, email string) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	items, err := a.itemRepository.ItemsByOwner(ctx, email)
	if err != nil {
		log.Err(err).Str("email", email).Msg("listing items ended with error")
		return nil, fmt.Errorf("listing items ended with error: %w", err)
	}

	return items, nil
}

// AddItem assigns the next item number for the owner and persists the record.
//
// The counter increment and the row insert are not one atomic transaction:
// when the insert fails after the counter was consumed, the number is skipped
// and the owner's numbering keeps a gap. Numbers are identifiers, not counts.
//
// Returns the created item or:
//   - ErrInvalidDataProvided if the item label is empty or the cost negative.
//   - A wrapped store.ErrCounterUnavailable if the counter store is
//     unreachable; no item record is created in that case.
//   - A wrapped storage error if the insert fails.
func (a *accountService) AddItem(ctx context.Context, req models.AddItemRequest) (models.Item, error) {
	log := logger.FromContext(ctx)

	if req.UserID == "" || req.Item == "" || req.Cost < 0 {
		log.Error().Str("email", req.UserID).Msg("invalid item data provided")
		return models.Item{}, ErrInvalidDataProvided
	}

	itemNo, err := a.sequenceRepository.NextItemNumber(ctx, req.UserID)
	if err != nil {
		log.Err(err).Str("email", req.UserID).Msg("obtaining next item number failed")
		return models.Item{}, fmt.Errorf("obtaining next item number failed: %w", err)
	}

	createdItem, err := a.itemRepository.CreateItem(ctx, models.Item{
		UserEmail: req.UserID,
		ItemNo:    itemNo,
		Name:      req.Item,
		Cost:      req.Cost,
	})
	if err != nil {
		log.Err(err).
			Str("email", req.UserID).
			Int64("item_no", itemNo).
			Msg("item creation ended with error")
		return models.Item{}, fmt.Errorf("item creation ended with error: %w", err)
	}

	return createdItem, nil
}

// UpdateItem rewrites the label and/or cost of an existing item addressed by
// (req.Email, req.ID).
//
// Returns the updated item or:
//   - ErrInvalidDataProvided if the item number is missing or the cost negative.
//   - A wrapped store.ErrItemNotFound if no such item exists.
func (a *accountService) UpdateItem(ctx context.Context, req models.UpdateItemRequest) (models.Item, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.ID < 1 || req.Cost < 0 {
		log.Error().Str("email", req.Email).Int64("item_no", req.ID).Msg("invalid item update data provided")
		return models.Item{}, ErrInvalidDataProvided
	}

	updatedItem, err := a.itemRepository.UpdateItem(ctx, req)
	if err != nil {
		log.Err(err).
			Str("email", req.Email).
			Int64("item_no", req.ID).
			Msg("item update ended with error")
		return models.Item{}, fmt.Errorf("item update ended with error: %w", err)
	}

	return updatedItem, nil
}

// DeleteItem removes the item addressed by (email, itemNo). The consumed
// item number is never reassigned.
//
// Returns the deleted item or:
//   - ErrInvalidDataProvided if the item number is missing.
//   - A wrapped store.ErrItemNotFound if no such item exists.
func (a *accountService) DeleteItem(ctx context.Context, email string, itemNo int64) (models.Item, error) {
	log := logger.FromContext(ctx)

	if email == "" || itemNo < 1 {
		log.Error().Str("email", email).Int64("item_no", itemNo).Msg("invalid item deletion data provided")
		return models.Item{}, ErrInvalidDataProvided
	}

	deletedItem, err := a.itemRepository.DeleteItem(ctx, email, itemNo)
	if err != nil {
		log.Err(err).
			Str("email", email).
			Int64("item_no", itemNo).
			Msg("item deletion ended with error")
		return models.Item{}, fmt.Errorf("item deletion ended with error: %w", err)
	}

	return deletedItem, nil
}
