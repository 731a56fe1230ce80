package artists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"releasedrop/feature/catalog"
	"releasedrop/feature/releases"
	"releasedrop/feature/releases/models"

	"go.uber.org/zap"
)

var (
	// ErrCatalogDisabled is returned when releases are fetched without catalog credentials.
	ErrCatalogDisabled = errors.New("catalog not configured")
	// ErrCatalog wraps failures to list an artist's albums.
	ErrCatalog = errors.New("catalog unavailable")
)

// FollowInput identifies a catalog artist to follow.
type FollowInput struct {
	SpotifyID string `json:"spotify_id"`
	Name      string `json:"name"`
}

// Validate reports the first missing required field.
func (in FollowInput) Validate() error {
	switch {
	case in.SpotifyID == "":
		return errors.New("spotify_id is required")
	case in.Name == "":
		return errors.New("name is required")
	}
	return nil
}

// RefreshResult describes one artist refresh.
type RefreshResult struct {
	Artist string `json:"artist"`
	// NewReleases counts the releases stored by this refresh.
	NewReleases int `json:"new_releases"`
	// TotalReleases counts the catalog releases inside the window.
	TotalReleases int `json:"total_releases"`
}

// ArtistReleases is an artist with every stored release.
type ArtistReleases struct {
	Artist            models.Artist    `json:"artist"`
	Releases          []models.Release `json:"releases"`
	ReleaseMonthsBack int              `json:"release_months_back"`
}

// Service manages followed artists and pulls their releases from the catalog.
type Service struct {
	repo       *releases.Repository
	catalog    catalog.Source
	monthsBack int
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates an artist service. A nil source disables refreshes.
func NewService(repo *releases.Repository, source catalog.Source, monthsBack int, logger *zap.Logger) *Service {
	if monthsBack <= 0 {
		monthsBack = catalog.DefaultMonthsBack
	}
	return &Service{
		repo:       repo,
		catalog:    source,
		monthsBack: monthsBack,
		logger:     logger,
		now:        time.Now,
	}
}

// Follow adds an artist to the follow list.
func (s *Service) Follow(ctx context.Context, in FollowInput) (*models.Artist, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	artist := models.Artist{SpotifyID: in.SpotifyID, Name: in.Name}
	if err := s.repo.FollowArtist(ctx, &artist); err != nil {
		return nil, err
	}
	s.logger.Info("Artist followed", zap.Uint("artist_id", artist.ID), zap.String("name", artist.Name))
	return &artist, nil
}

// List returns the followed artists ordered by name.
func (s *Service) List(ctx context.Context) ([]models.Artist, error) {
	return s.repo.ListArtists(ctx)
}

// Unfollow removes the artist together with its releases.
func (s *Service) Unfollow(ctx context.Context, id uint) (*models.Artist, error) {
	artist, err := s.repo.DeleteArtist(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Artist unfollowed", zap.Uint("artist_id", id), zap.String("name", artist.Name))
	return artist, nil
}

// Refresh stores the artist's catalog releases dated within the configured
// window. Releases not seen before are flagged as new. The artist's last
// checked time is set on success.
func (s *Service) Refresh(ctx context.Context, id uint) (*RefreshResult, error) {
	artist, err := s.repo.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	albums, err := s.artistAlbums(ctx, artist)
	if err != nil {
		return nil, err
	}
	now := s.now()
	recent := catalog.Since(albums, catalog.Cutoff(now, s.monthsBack))

	created, err := s.store(ctx, artist, recent, true)
	if err != nil {
		return nil, err
	}
	if err := s.repo.TouchArtist(ctx, artist.ID, now); err != nil {
		return nil, err
	}

	s.logger.Info("Artist refreshed",
		zap.Uint("artist_id", artist.ID),
		zap.String("name", artist.Name),
		zap.Int("new_releases", created),
		zap.Int("total_releases", len(recent)),
	)
	return &RefreshResult{Artist: artist.Name, NewReleases: created, TotalReleases: len(recent)}, nil
}

// Releases stores every catalog release of the artist without flagging
// them as new and returns all stored releases, newest first. Without a
// catalog only the stored releases are returned.
func (s *Service) Releases(ctx context.Context, id uint) (*ArtistReleases, error) {
	artist, err := s.repo.GetArtist(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.catalog != nil {
		albums, err := s.artistAlbums(ctx, artist)
		if err != nil {
			return nil, err
		}
		if _, err := s.store(ctx, artist, albums, false); err != nil {
			return nil, err
		}
	}

	stored, err := s.repo.ListReleases(ctx, releases.Filter{ArtistID: artist.ID})
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = []models.Release{}
	}
	return &ArtistReleases{Artist: *artist, Releases: stored, ReleaseMonthsBack: s.monthsBack}, nil
}

func (s *Service) artistAlbums(ctx context.Context, artist *models.Artist) ([]catalog.Album, error) {
	if s.catalog == nil {
		return nil, ErrCatalogDisabled
	}
	albums, err := s.catalog.ArtistAlbums(ctx, artist.SpotifyID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	return albums, nil
}

// store saves the albums not stored yet and returns how many it saved.
// Releases already stored keep their artist and seen state.
func (s *Service) store(ctx context.Context, artist *models.Artist, albums []catalog.Album, markNew bool) (int, error) {
	ids := make([]string, 0, len(albums))
	for _, a := range albums {
		ids = append(ids, a.ID)
	}
	known, err := s.repo.KnownReleases(ctx, ids)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, a := range albums {
		if known[a.ID] {
			continue
		}
		known[a.ID] = true

		release := models.Release{
			SpotifyID:   a.ID,
			Name:        a.Name,
			ReleaseType: a.Type,
			ReleaseDate: a.ReleaseDate,
			ArtistID:    artist.ID,
		}
		if err := s.repo.UpsertRelease(ctx, &release); err != nil {
			return created, fmt.Errorf("store release %s: %w", a.ID, err)
		}
		if !markNew {
			if err := s.repo.MarkSeen(ctx, release.ID); err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}
