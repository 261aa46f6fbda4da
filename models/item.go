package models

import "time"

// Item is a single record owned by a user. Items are addressed by the pair
// (UserEmail, ItemNo); ItemNo is assigned from the per-user sequence counter
// and is unique within one owner but not globally.
type Item struct {
	// ID is the internal surrogate key of the item row.
	ID int64 `json:"-"`

	// UserEmail is the email of the owning user.
	UserEmail string `json:"-"`

	// ItemNo is the per-user item number issued by the sequence counter.
	// Numbers start at 1, are never reused, and may contain gaps when an
	// insert was aborted after the counter had already been consumed.
	ItemNo int64 `json:"id"`

	// Name is the item label.
	Name string `json:"item"`

	// Cost is the item cost.
	Cost int64 `json:"cost"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the Item model.
func (i Item) TableName() string {
	return "items"
}
