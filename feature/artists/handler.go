package artists

import (
	"errors"

	"releasedrop/core/logger"
	"releasedrop/feature/releases"
	"releasedrop/feature/releases/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for followed artists.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the artist routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/artists")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleFollow)
	group.Delete("/:id", h.HandleUnfollow)
	group.Post("/:id/refresh", h.HandleRefresh)
	group.Get("/:id/releases", h.HandleReleases)
}

// HandleList lists followed artists.
// @Summary List Artists
// @Description Lists followed artists ordered by name.
// @Tags artists
// @Produce json
// @Success 200 {array} models.Artist
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /artists [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	artists, err := h.service.List(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	if artists == nil {
		artists = []models.Artist{}
	}
	return c.JSON(artists)
}

// HandleFollow adds an artist to the follow list.
// @Summary Follow Artist
// @Tags artists
// @Accept json
// @Produce json
// @Param artist body FollowInput true "Artist"
// @Success 201 {object} models.Artist
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 409 {object} map[string]string "Already Followed"
// @Router /artists [post]
func (h *Handler) HandleFollow(c *fiber.Ctx) error {
	var in FollowInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	artist, err := h.service.Follow(c.Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(artist)
}

// HandleUnfollow removes an artist and its releases.
// @Summary Unfollow Artist
// @Tags artists
// @Produce json
// @Param id path int true "Artist id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /artists/{id} [delete]
func (h *Handler) HandleUnfollow(c *fiber.Ctx) error {
	id, err := artistID(c)
	if err != nil {
		return h.fail(c, err)
	}
	artist, err := h.service.Unfollow(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Unfollowed " + artist.Name})
}

// HandleRefresh fetches the artist's recent releases from the catalog.
// @Summary Refresh Artist
// @Description Stores catalog releases dated within the configured window and flags unseen ones as new.
// @Tags artists
// @Produce json
// @Param id path int true "Artist id"
// @Success 200 {object} RefreshResult
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Catalog Error"
// @Failure 503 {object} map[string]string "Catalog Not Configured"
// @Router /artists/{id}/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	id, err := artistID(c)
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.service.Refresh(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// HandleReleases syncs and lists every release of an artist.
// @Summary Artist Releases
// @Description Stores every catalog release of the artist without flagging it as new, then lists all stored releases.
// @Tags artists
// @Produce json
// @Param id path int true "Artist id"
// @Success 200 {object} ArtistReleases
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Catalog Error"
// @Router /artists/{id}/releases [get]
func (h *Handler) HandleReleases(c *fiber.Ctx) error {
	id, err := artistID(c)
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.service.Releases(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

var errInvalidID = errors.New("invalid artist id")

func artistID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

// fail maps service errors to HTTP responses.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, releases.ErrArtistNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, releases.ErrArtistFollowed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrCatalogDisabled):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrCatalog):
		logger.WithRayID(h.logger, c).Warn("Catalog request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.logger, c).Error("Request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
