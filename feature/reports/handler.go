package reports

import (
	"errors"
	"net/url"

	"releasedrop/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves stored sweep reports.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// RegisterRoutes registers the report routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reports")
	group.Get("/", h.HandleList)
	group.Get("/*", h.HandleGet)
}

// HandleList lists stored sweep reports.
// @Summary List Reports
// @Tags reports
// @Produce json
// @Param provider query string false "Only reports of this provider"
// @Success 200 {array} Info
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reports [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list, err := h.store.List(c.Context(), c.Query("provider"))
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Listing reports failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandleGet returns one stored sweep report.
// @Summary Get Report
// @Tags reports
// @Produce json
// @Param key path string true "Report key, e.g. reports/plex/2024-01-01T00:00:00Z.json"
// @Success 200 {object} releases.SweepReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /reports/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidKey.Error()})
	}

	data, err := h.store.Get(c.Context(), key)
	switch {
	case errors.Is(err, ErrInvalidKey):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrReportNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		logger.WithRayID(h.logger, c).Error("Reading report failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}
