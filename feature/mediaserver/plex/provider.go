package plex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"releasedrop/core/reconcile"
	"releasedrop/core/transport"

	"go.uber.org/zap"
)

// Name identifies the Plex provider.
const Name = "plex"

// Provider implements reconcile.Provider against the Plex HTTP API.
type Provider struct {
	cfg     Config
	client  *transport.Client
	matcher reconcile.Matcher
	logger  *zap.Logger
}

// New creates a Plex provider. matcher supplies the artist matching policy.
func New(cfg Config, matcher reconcile.Matcher, logger *zap.Logger) *Provider {
	headers := http.Header{}
	headers.Set("X-Plex-Token", cfg.Token)

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		cfg: cfg,
		client: transport.New(transport.Config{
			BaseURL:           cfg.URL,
			TimeoutSeconds:    cfg.TimeoutSeconds,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}, headers),
		matcher: matcher,
		logger:  logger.With(zap.String("provider", Name)),
	}
}

// Name returns "plex".
func (p *Provider) Name() string {
	return Name
}

// Configured reports whether the server URL and token are set.
func (p *Provider) Configured() bool {
	return p.cfg.Configured()
}

// ListLibraries returns the sections of type artist.
func (p *Provider) ListLibraries(ctx context.Context) ([]reconcile.Library, error) {
	if !p.Configured() {
		return nil, nil
	}

	var env envelope
	if err := p.client.GetJSON(ctx, "/library/sections", nil, &env); err != nil {
		return nil, fmt.Errorf("list plex sections: %w", err)
	}

	var libs []reconcile.Library
	for _, d := range env.MediaContainer.Directory {
		if d.Type == sectionTypeArtist {
			libs = append(libs, reconcile.Library{Key: d.Key, Title: d.Title})
		}
	}
	p.logger.Debug("Listed music libraries", zap.Int("count", len(libs)))
	return libs, nil
}

// FindArtist lists the artists of a section and applies the artist matching policy.
func (p *Provider) FindArtist(ctx context.Context, libraryKey, artistName string) (*reconcile.ArtistRef, error) {
	if !p.Configured() {
		return nil, nil
	}

	items, err := p.sectionItems(ctx, libraryKey, metadataArtist)
	if err != nil {
		return nil, fmt.Errorf("list plex artists: %w", err)
	}

	candidates := make([]reconcile.ArtistRef, 0, len(items))
	for _, m := range items {
		candidates = append(candidates, reconcile.ArtistRef{ID: m.RatingKey, Title: m.Title})
	}
	return p.matcher.MatchArtist(candidates, artistName), nil
}

// ListAlbums lists the albums of a section credited to artistName.
// Plex credits albums through parentTitle, so the filter goes by name.
func (p *Provider) ListAlbums(ctx context.Context, libraryKey string, artist reconcile.ArtistRef, artistName string) ([]reconcile.Album, error) {
	if !p.Configured() {
		return nil, nil
	}

	items, err := p.sectionItems(ctx, libraryKey, metadataAlbum)
	if err != nil {
		return nil, fmt.Errorf("list plex albums: %w", err)
	}

	var albums []reconcile.Album
	for _, m := range items {
		if !p.matcher.ArtistMatches(m.ParentTitle, artistName) {
			continue
		}
		albums = append(albums, reconcile.Album{
			ID:          m.RatingKey,
			Key:         m.Key,
			Title:       m.Title,
			ArtistTitle: m.ParentTitle,
		})
	}
	return albums, nil
}

// ListTracks fetches the children of an album through its key.
func (p *Provider) ListTracks(ctx context.Context, album reconcile.Album) ([]reconcile.LibraryTrack, error) {
	if !p.Configured() {
		return nil, nil
	}

	key := album.Key
	if key == "" {
		key = "/library/metadata/" + album.ID + "/children"
	}

	var env envelope
	if err := p.client.GetJSON(ctx, key, nil, &env); err != nil {
		return nil, fmt.Errorf("list plex tracks of %s: %w", album.ID, err)
	}

	tracks := make([]reconcile.LibraryTrack, 0, len(env.MediaContainer.Metadata))
	for _, m := range env.MediaContainer.Metadata {
		tracks = append(tracks, reconcile.LibraryTrack{Title: m.Title})
	}
	return tracks, nil
}

// Ping checks that the server answers an authenticated request.
func (p *Provider) Ping(ctx context.Context) error {
	if !p.Configured() {
		return reconcile.ErrNotConfigured
	}
	var id identity
	if err := p.client.GetJSON(ctx, "/identity", nil, &id); err != nil {
		return fmt.Errorf("ping plex: %w", err)
	}
	return nil
}

func (p *Provider) sectionItems(ctx context.Context, libraryKey, itemType string) ([]metadata, error) {
	var env envelope
	path := "/library/sections/" + url.PathEscape(libraryKey) + "/all"
	if err := p.client.GetJSON(ctx, path, url.Values{"type": {itemType}}, &env); err != nil {
		return nil, err
	}
	return env.MediaContainer.Metadata, nil
}
