package http

import (
	"github.com/mediamz/accounts/internal/config"
	"github.com/mediamz/accounts/internal/logger"
	"github.com/mediamz/accounts/internal/service"
)

type Handler struct {
	services *service.Services

	basePath string
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		basePath: cfg.Server.BasePath,
		version:  cfg.App.Version,
		logger:   logger,
	}
}
