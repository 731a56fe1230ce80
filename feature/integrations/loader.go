package integrations

import (
	"releasedrop/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates the integrations feature.
func NewFeature(providers []reconcile.Provider, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(providers, logger))}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrations"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
