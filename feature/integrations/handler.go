package integrations

import (
	"github.com/gofiber/fiber/v2"
)

// Handler serves the integration status route.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integration routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrations")
	group.Get("/status", h.HandleStatus)
}

// HandleStatus reports which media servers are configured and reachable.
// @Summary Integration Status
// @Description Pings every media server with a short timeout.
// @Tags integrations
// @Produce json
// @Success 200 {object} map[string]Status
// @Router /integrations/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status(c.Context()))
}
