package releases

import (
	"errors"

	"releasedrop/core/logger"
	"releasedrop/feature/releases/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for releases.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the release routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/releases")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleAdd)
	group.Get("/stats", h.HandleStats)
	group.Get("/latest", h.HandleLatest)
	group.Post("/seen", h.HandleMarkAllSeen)
	group.Post("/check-all/:provider", h.HandleCheckAll)
	group.Get("/:id", h.HandleGet)
	group.Get("/:id/tracks", h.HandleTracks)
	group.Get("/:id/checks", h.HandleChecks)
	group.Post("/:id/seen", h.HandleMarkSeen)
	group.Post("/:id/check/:provider", h.HandleCheck)
}

// HandleList lists releases.
// @Summary List Releases
// @Description Lists tracked releases, newest release date first.
// @Tags releases
// @Produce json
// @Param only_new query boolean false "Only releases not yet seen"
// @Param artist_id query int false "Filter by artist id"
// @Param limit query int false "Maximum number of releases"
// @Success 200 {array} models.Release
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /releases [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	f := Filter{
		OnlyNew:  c.QueryBool("only_new"),
		ArtistID: uint(c.QueryInt("artist_id")),
		Limit:    c.QueryInt("limit"),
	}
	releases, err := h.service.ListReleases(c.Context(), f)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(releases)
}

// HandleLatest lists recent releases.
// @Summary Latest Releases
// @Description Lists releases dated within the configured number of months, newest first.
// @Tags releases
// @Produce json
// @Param limit query int false "Maximum number of releases"
// @Success 200 {array} models.Release
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /releases/latest [get]
func (h *Handler) HandleLatest(c *fiber.Ctx) error {
	releases, err := h.service.Latest(c.Context(), c.QueryInt("limit"))
	if err != nil {
		return h.fail(c, err)
	}
	if releases == nil {
		releases = []models.Release{}
	}
	return c.JSON(releases)
}

// HandleAdd stores a release.
// @Summary Track Release
// @Description Stores a release and its artist. Existing releases are refreshed.
// @Tags releases
// @Accept json
// @Produce json
// @Param release body AddReleaseInput true "Release"
// @Success 201 {object} models.Release
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /releases [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	var in AddReleaseInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := in.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	release, err := h.service.AddRelease(c.Context(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(release)
}

// HandleStats returns release statistics.
// @Summary Release Stats
// @Tags releases
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /releases/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(stats)
}

// HandleGet returns one release with its library checks.
// @Summary Get Release
// @Tags releases
// @Produce json
// @Param id path int true "Release id"
// @Success 200 {object} models.Release
// @Failure 404 {object} map[string]string "Not Found"
// @Router /releases/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := releaseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	release, err := h.service.GetRelease(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(release)
}

// HandleTracks returns the canonical tracks of a release.
// @Summary Release Tracks
// @Description Returns the cached track list, fetching it from the catalog on first use.
// @Tags releases
// @Produce json
// @Param id path int true "Release id"
// @Success 200 {array} reconcile.Track
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Catalog Error"
// @Router /releases/{id}/tracks [get]
func (h *Handler) HandleTracks(c *fiber.Ctx) error {
	id, err := releaseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	tracks, err := h.service.Tracks(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(tracks)
}

// HandleChecks returns the stored library checks of a release.
// @Summary Release Checks
// @Description Returns the latest check per provider, ordered by provider.
// @Tags releases
// @Produce json
// @Param id path int true "Release id"
// @Success 200 {array} models.LibraryCheck
// @Failure 404 {object} map[string]string "Not Found"
// @Router /releases/{id}/checks [get]
func (h *Handler) HandleChecks(c *fiber.Ctx) error {
	id, err := releaseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	checks, err := h.service.Checks(c.Context(), id)
	if err != nil {
		return h.fail(c, err)
	}
	if checks == nil {
		checks = []models.LibraryCheck{}
	}
	return c.JSON(checks)
}

// HandleMarkSeen clears the new flag of a release.
// @Summary Mark Release Seen
// @Tags releases
// @Produce json
// @Param id path int true "Release id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string "Not Found"
// @Router /releases/{id}/seen [post]
func (h *Handler) HandleMarkSeen(c *fiber.Ctx) error {
	id, err := releaseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	if err := h.service.MarkSeen(c.Context(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleMarkAllSeen clears the new flag of every release.
// @Summary Mark All Releases Seen
// @Tags releases
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /releases/seen [post]
func (h *Handler) HandleMarkAllSeen(c *fiber.Ctx) error {
	n, err := h.service.MarkAllSeen(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok", "updated": n})
}

// HandleCheck reconciles one release against a media server.
// @Summary Check Release
// @Description Looks the release up in every music library of the provider and stores the result.
// @Tags releases
// @Produce json
// @Param id path int true "Release id"
// @Param provider path string true "Provider (plex, jellyfin)"
// @Success 200 {object} models.LibraryCheck
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Catalog Error"
// @Router /releases/{id}/check/{provider} [post]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	id, err := releaseID(c)
	if err != nil {
		return h.fail(c, err)
	}
	check, err := h.service.CheckRelease(c.Context(), id, c.Params("provider"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(check)
}

// HandleCheckAll reconciles every release against a media server.
// @Summary Check All Releases
// @Description Runs a sweep over all stored releases. This operation may take a long time.
// @Tags releases
// @Produce json
// @Param provider path string true "Provider (plex, jellyfin)"
// @Success 200 {object} SweepSummary
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /releases/check-all/{provider} [post]
func (h *Handler) HandleCheckAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Triggering library sweep", zap.String("provider", c.Params("provider")))

	summary, err := h.service.CheckAll(c.Context(), c.Params("provider"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(summary)
}

var errInvalidID = errors.New("invalid release id")

func releaseID(c *fiber.Ctx) (uint, error) {
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
	case errors.Is(err, ErrReleaseNotFound), errors.Is(err, ErrUnknownProvider):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrCatalog):
		logger.WithRayID(h.logger, c).Warn("Catalog request failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	logger.WithRayID(h.logger, c).Error("Request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
