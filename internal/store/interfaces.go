package store

import (
	"context"

	"github.com/itemkeeper/item-keeper/models"
)

// UserRepository is the persistence contract for user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUsersByName(ctx context.Context, name string) ([]models.User, error)
	UpdatePassword(ctx context.Context, email string, passwordHash string) (models.User, error)
	DeleteUser(ctx context.Context, email string) (models.User, error)
}

// ItemRepository is the persistence contract for per-user item records.
// Items are addressed by the (owner email, item number) pair.
type ItemRepository interface {
	ItemsByOwner(ctx context.Context, email string) ([]models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (models.Item, error)
	UpdateItem(ctx context.Context, update models.UpdateItemRequest) (models.Item, error)
	DeleteItem(ctx context.Context, email string, itemNo int64) (models.Item, error)
}

// SequenceRepository issues strictly increasing per-user integers used as
// item numbers. Increments must be atomic under concurrent callers for the
// same identity: no two concurrent calls may observe the same value.
type SequenceRepository interface {
	NextItemNumber(ctx context.Context, email string) (int64, error)
}

// ErrorClassificator decides whether a failed database operation hit a
// transient condition (connection loss, deadlock) or a permanent one.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
