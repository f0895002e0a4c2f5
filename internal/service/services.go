package service

import (
	"github.com/mediamz/accounts/internal/config"
	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/store"
)

// Services aggregates all business-logic services of the application.
type Services struct {
	AuthService AuthService
	UserService UserService
}

// NewServices wires all services to the given storages and configuration.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.Auth, logger),
		UserService: NewUserService(storages.UserRepository, logger),
	}
}
