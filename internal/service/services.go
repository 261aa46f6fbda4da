package service

import (
	"github.com/itemkeeper/item-keeper/internal/config"
	"github.com/itemkeeper/item-keeper/internal/logger"
	"github.com/itemkeeper/item-keeper/internal/store"
)

type Services struct {
	AuthService    AuthService
	AccountService AccountService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, cfg, logger),
		AccountService: NewAccountService(storages.ItemRepository, storages.SequenceRepository, logger),
	}
}
