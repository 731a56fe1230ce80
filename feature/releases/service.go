package releases

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"releasedrop/core/reconcile"
	"releasedrop/feature/catalog"
	"releasedrop/feature/releases/models"

	"go.uber.org/zap"
)

var (
	// ErrUnknownProvider is returned for a provider name without an engine.
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrCatalog wraps failures to fetch a track list from the catalog.
	ErrCatalog = errors.New("catalog unavailable")
)

// SweepSummary describes one check-all run.
type SweepSummary struct {
	Provider      string    `json:"provider"`
	TotalReleases int       `json:"total_releases"`
	Checked       int       `json:"checked"`
	InLibrary     int       `json:"in_library"`
	NotInLibrary  int       `json:"not_in_library"`
	Exact         int       `json:"exact"`
	Similar       int       `json:"similar"`
	Incomplete    int       `json:"incomplete"`
	LibraryErrors int       `json:"library_errors"`
	Errors        []string  `json:"errors"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	// ReportKey is the stored report object, empty when reports are disabled.
	ReportKey string `json:"report_key,omitempty"`
}

// count copies the aggregate of the stored results.
func (s *SweepSummary) count(agg reconcile.Summary) {
	s.Checked = agg.Total
	s.InLibrary = agg.InLibrary
	s.NotInLibrary = agg.Total - agg.InLibrary
	s.Exact = agg.Exact
	s.Similar = agg.Similar
	s.Incomplete = agg.Incomplete
	s.LibraryErrors = agg.LibraryErrors
}

// ReleaseResult pairs a stored release with its reconciliation result.
type ReleaseResult struct {
	ReleaseID uint             `json:"release_id"`
	Name      string           `json:"name"`
	Artist    string           `json:"artist"`
	Result    reconcile.Result `json:"result"`
}

// SweepReport is everything a check-all run produced.
type SweepReport struct {
	Summary SweepSummary    `json:"summary"`
	Results []ReleaseResult `json:"results"`
}

// ReportSink stores sweep reports and returns where they went.
type ReportSink interface {
	SaveReport(ctx context.Context, report SweepReport) (string, error)
}

// AddReleaseInput is the catalog data of a release to track.
type AddReleaseInput struct {
	SpotifyID   string            `json:"spotify_id"`
	Name        string            `json:"name"`
	ReleaseType string            `json:"release_type"`
	ReleaseDate string            `json:"release_date"`
	TotalTracks int               `json:"total_tracks"`
	Artist      ArtistInput       `json:"artist"`
	Tracks      []reconcile.Track `json:"tracks,omitempty"`
}

// ArtistInput identifies the artist of an added release.
type ArtistInput struct {
	SpotifyID string `json:"spotify_id"`
	Name      string `json:"name"`
}

// Validate reports the first missing required field.
func (in AddReleaseInput) Validate() error {
	switch {
	case in.SpotifyID == "":
		return errors.New("spotify_id is required")
	case in.Name == "":
		return errors.New("name is required")
	case in.Artist.SpotifyID == "":
		return errors.New("artist.spotify_id is required")
	case in.Artist.Name == "":
		return errors.New("artist.name is required")
	}
	return nil
}

// Options holds the optional collaborators of a Service.
type Options struct {
	// Catalog fills in missing track lists. Nil leaves them empty.
	Catalog catalog.Source
	// Sink receives check-all reports. Nil disables reports.
	Sink ReportSink
	// Parallelism bounds concurrent reconciliations during check-all.
	Parallelism int
	// MonthsBack is the window of Latest in thirty-day months.
	MonthsBack int
}

// Service runs library checks for stored releases.
type Service struct {
	repo    *Repository
	engines map[string]*reconcile.Engine
	opts    Options
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a release service. Each engine is addressed by its provider name.
func NewService(repo *Repository, engines []*reconcile.Engine, logger *zap.Logger, opts Options) *Service {
	byName := make(map[string]*reconcile.Engine, len(engines))
	for _, e := range engines {
		byName[e.ProviderName()] = e
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = reconcile.DefaultParallelism
	}
	return &Service{
		repo:    repo,
		engines: byName,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// WithParallelism returns a copy of the service that reconciles n releases
// at once during check-all.
func (s *Service) WithParallelism(n int) *Service {
	c := *s
	if n > 0 {
		c.opts.Parallelism = n
	}
	return &c
}

// Providers returns the provider names checks can run against, sorted.
func (s *Service) Providers() []string {
	names := make([]string, 0, len(s.engines))
	for name := range s.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddRelease stores the artist and release of in.
func (s *Service) AddRelease(ctx context.Context, in AddReleaseInput) (*models.Release, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	artist := models.Artist{SpotifyID: in.Artist.SpotifyID, Name: in.Artist.Name}
	if err := s.repo.UpsertArtist(ctx, &artist); err != nil {
		return nil, fmt.Errorf("store artist: %w", err)
	}

	release := models.Release{
		SpotifyID:   in.SpotifyID,
		Name:        in.Name,
		ReleaseType: in.ReleaseType,
		ReleaseDate: in.ReleaseDate,
		TotalTracks: in.TotalTracks,
		ArtistID:    artist.ID,
		Tracks:      in.Tracks,
	}
	if err := s.repo.UpsertRelease(ctx, &release); err != nil {
		return nil, fmt.Errorf("store release: %w", err)
	}
	release.Artist = artist
	return &release, nil
}

// ListReleases returns the stored releases matching f.
func (s *Service) ListReleases(ctx context.Context, f Filter) ([]models.Release, error) {
	return s.repo.ListReleases(ctx, f)
}

// Latest returns the releases dated within the last MonthsBack months,
// newest first. A positive limit caps the result.
func (s *Service) Latest(ctx context.Context, limit int) ([]models.Release, error) {
	cutoff := catalog.Cutoff(s.now(), s.opts.MonthsBack)
	return s.repo.ListReleases(ctx, Filter{Since: cutoff.Format(catalog.DateLayout), Limit: limit})
}

// GetRelease returns one release with its checks.
func (s *Service) GetRelease(ctx context.Context, id uint) (*models.Release, error) {
	return s.repo.GetRelease(ctx, id)
}

// Checks returns the stored library checks of a release, one per provider.
func (s *Service) Checks(ctx context.Context, id uint) ([]models.LibraryCheck, error) {
	if _, err := s.repo.GetRelease(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.ChecksFor(ctx, id)
}

// MarkSeen clears the new flag of one release.
func (s *Service) MarkSeen(ctx context.Context, id uint) error {
	return s.repo.MarkSeen(ctx, id)
}

// MarkAllSeen clears the new flag of every release.
func (s *Service) MarkAllSeen(ctx context.Context) (int64, error) {
	return s.repo.MarkAllSeen(ctx)
}

// Stats aggregates the stored releases.
func (s *Service) Stats(ctx context.Context) (models.Stats, error) {
	return s.repo.Stats(ctx)
}

// Tracks returns the canonical tracks of a release, fetching and caching
// them from the catalog when none are stored yet.
func (s *Service) Tracks(ctx context.Context, id uint) ([]reconcile.Track, error) {
	release, err := s.repo.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	tracks, err := s.hydrate(ctx, release)
	if err != nil {
		return nil, err
	}
	if tracks == nil {
		tracks = []reconcile.Track{}
	}
	return tracks, nil
}

// CheckRelease reconciles one release against the named provider and stores the outcome.
func (s *Service) CheckRelease(ctx context.Context, id uint, provider string) (*models.LibraryCheck, error) {
	engine, ok := s.engines[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	release, err := s.repo.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}

	tracks, err := s.hydrate(ctx, release)
	if err != nil {
		return nil, err
	}
	release.Tracks = tracks

	res := engine.ReconcileRelease(ctx, release.Canonical())
	check := models.NewLibraryCheck(release.ID, res, s.now())
	if err := s.repo.SaveCheck(ctx, &check); err != nil {
		return nil, err
	}

	s.logger.Info("Release checked",
		zap.Uint("release_id", release.ID),
		zap.String("provider", provider),
		zap.Bool("in_library", check.InLibrary),
		zap.String("match_type", check.MatchType),
	)
	return &check, nil
}

// CheckAll reconciles every stored release against the named provider.
// Releases whose tracks cannot be fetched are skipped and listed in Errors.
func (s *Service) CheckAll(ctx context.Context, provider string) (*SweepSummary, error) {
	engine, ok := s.engines[provider]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}

	summary := &SweepSummary{Provider: provider, Errors: []string{}, StartedAt: s.now()}
	log := s.logger.With(zap.String("provider", provider))

	stored, err := s.repo.ListReleases(ctx, Filter{})
	if err != nil {
		return nil, err
	}
	summary.TotalReleases = len(stored)

	var (
		ready     []models.Release
		canonical []reconcile.Release
	)
	for i := range stored {
		tracks, err := s.hydrate(ctx, &stored[i])
		if err != nil {
			log.Warn("Skipping release", zap.Uint("release_id", stored[i].ID), zap.Error(err))
			summary.Errors = append(summary.Errors, fmt.Sprintf("Error checking %s: %v", stored[i].Name, err))
			continue
		}
		stored[i].Tracks = tracks
		ready = append(ready, stored[i])
		canonical = append(canonical, stored[i].Canonical())
	}

	results := engine.Sweep(ctx, canonical, s.opts.Parallelism)
	checkedAt := s.now()

	report := SweepReport{Results: make([]ReleaseResult, 0, len(results))}
	saved := make([]reconcile.Result, 0, len(results))
	for i, res := range results {
		check := models.NewLibraryCheck(ready[i].ID, res, checkedAt)
		if err := s.repo.SaveCheck(ctx, &check); err != nil {
			summary.Errors = append(summary.Errors, fmt.Sprintf("Error saving %s: %v", ready[i].Name, err))
			continue
		}
		saved = append(saved, res)
		report.Results = append(report.Results, ReleaseResult{
			ReleaseID: ready[i].ID,
			Name:      ready[i].Name,
			Artist:    ready[i].Artist.Name,
			Result:    res,
		})
	}
	summary.count(reconcile.Summarize(saved))
	summary.FinishedAt = s.now()

	if s.opts.Sink != nil {
		report.Summary = *summary
		key, err := s.opts.Sink.SaveReport(ctx, report)
		if err != nil {
			log.Warn("Storing sweep report failed", zap.Error(err))
		} else {
			summary.ReportKey = key
		}
	}

	log.Info("Sweep finished",
		zap.Int("total", summary.TotalReleases),
		zap.Int("checked", summary.Checked),
		zap.Int("in_library", summary.InLibrary),
		zap.Int("errors", len(summary.Errors)),
		zap.Duration("took", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

// hydrate returns the release tracks, fetching them from the catalog when
// none are cached. Fetched tracks are cached on the release row.
func (s *Service) hydrate(ctx context.Context, release *models.Release) ([]reconcile.Track, error) {
	if len(release.Tracks) > 0 || s.opts.Catalog == nil {
		return release.Tracks, nil
	}

	tracks, err := s.opts.Catalog.AlbumTracks(ctx, release.SpotifyID)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch tracks: %v", ErrCatalog, err)
	}
	if err := s.repo.SaveTracks(ctx, release.ID, tracks); err != nil {
		s.logger.Warn("Caching tracks failed", zap.Uint("release_id", release.ID), zap.Error(err))
	}
	return tracks, nil
}
