package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/itemkeeper/item-keeper/models"
)

const (
	createUser = `INSERT INTO users (email, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, email, name, password_hash, created_at;`

	findUserByEmail = `SELECT user_id, email, name, password_hash, created_at
    FROM users
    WHERE email = $1;`

	findUsersByName = `SELECT user_id, email, name, password_hash, created_at
    FROM users
    WHERE name = $1
    ORDER BY user_id;`

	updateUserPassword = `UPDATE users
    SET password_hash = $2
    WHERE email = $1
    RETURNING user_id, email, name, password_hash, created_at;`

	deleteUser = `DELETE FROM users
    WHERE email = $1
    RETURNING user_id, email, name, password_hash, created_at;`

	itemsByOwner = `SELECT id, user_email, item_no, item, cost, created_at, updated_at
    FROM items
    WHERE user_email = $1
    ORDER BY item_no;`

	createItem = `INSERT INTO items (user_email, item_no, item, cost)
    VALUES ($1, $2, $3, $4)
    RETURNING id, user_email, item_no, item, cost, created_at, updated_at;`

	deleteItem = `DELETE FROM items
    WHERE user_email = $1 AND item_no = $2
    RETURNING id, user_email, item_no, item, cost, created_at, updated_at;`
)

// buildUpdateItemQuery builds the UPDATE statement for changing an item's
// label and/or cost, addressed by (owner email, item number).
//
// The label is only rewritten when a replacement name was supplied; the cost
// is always rewritten because zero is a legal cost value in the API.
func buildUpdateItemQuery(update models.UpdateItemRequest) (string, []any, error) {
	builder := sq.Update("items").
		Set("cost", update.Cost).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"user_email": update.Email}).
		Where(sq.Eq{"item_no": update.ID}).
		Suffix("RETURNING id, user_email, item_no, item, cost, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)

	if update.NewItemName != "" {
		builder = builder.Set("item", update.NewItemName)
	}

	return builder.ToSql()
}
