package editor

import (
	"table-editor/core/table"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the editor feature over the cached table.
func NewFeature(cfg Config, cache *table.Cache, archiver Archiver, store *WorkspaceStore, sessions *session.Store, logger *zap.Logger) *Feature {
	svc := NewService(cache, archiver, store, cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc, sessions)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "editor"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service.cache != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the editor service.
func (f *Feature) Service() *Service {
	return f.service
}
