package service

import (
	"context"

	"github.com/itemkeeper/item-keeper/models"
)

// AuthService handles account lifecycle, credential verification, and JWT
// token issuance/parsing.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.SignupRequest) (models.User, error)
	Login(ctx context.Context, req models.SigninRequest) (models.User, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (models.User, error)
	DeleteUser(ctx context.Context, email string) (models.User, error)
	FindUsersByName(ctx context.Context, name string) ([]models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AccountService handles per-user item records, including item-number
// assignment through the sequence counter.
type AccountService interface {
	ListItems(ctx context.Context, email string) ([]models.Item, error)
	AddItem(ctx context.Context, req models.AddItemRequest) (models.Item, error)
	UpdateItem(ctx context.Context, req models.UpdateItemRequest) (models.Item, error)
	DeleteItem(ctx context.Context, email string, itemNo int64) (models.Item, error)
}
