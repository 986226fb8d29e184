// Package http implements the HTTP transport layer of the server: the chi
// router, middleware (tracing, logging, authentication), and the REST
// handlers that front the service layer. Errors bubbling up from services
// and repositories are mapped to status codes in one place
// (errors_mapper.go) so handlers stay thin.
package http

import (
	"github.com/nvoronin/inkwell/internal/logger"
	"github.com/nvoronin/inkwell/internal/service"
)

type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
