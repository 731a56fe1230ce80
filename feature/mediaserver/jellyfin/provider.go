package jellyfin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"releasedrop/core/reconcile"
	"releasedrop/core/transport"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Name identifies the Jellyfin provider.
const Name = "jellyfin"

// ErrNoUsers is returned when the server has no user to scope queries with.
var ErrNoUsers = errors.New("jellyfin server has no users")

// Provider implements reconcile.Provider against the Jellyfin HTTP API.
type Provider struct {
	cfg     Config
	client  *transport.Client
	matcher reconcile.Matcher
	logger  *zap.Logger

	mu     sync.RWMutex
	userID string
	sf     singleflight.Group
}

// New creates a Jellyfin provider. matcher supplies the artist matching policy.
func New(cfg Config, matcher reconcile.Matcher, logger *zap.Logger) *Provider {
	headers := http.Header{}
	headers.Set("X-Emby-Token", cfg.APIKey)

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
		userID:  cfg.UserID,
	}
}

// Name returns "jellyfin".
func (p *Provider) Name() string {
	return Name
}

// Configured reports whether the server URL and API key are set.
func (p *Provider) Configured() bool {
	return p.cfg.Configured()
}

// ListLibraries returns the user's views whose collection type is music.
func (p *Provider) ListLibraries(ctx context.Context) ([]reconcile.Library, error) {
	if !p.Configured() {
		return nil, nil
	}

	uid, err := p.user(ctx)
	if err != nil {
		return nil, err
	}

	var views itemsResponse
	if err := p.client.GetJSON(ctx, "/Users/"+url.PathEscape(uid)+"/Views", nil, &views); err != nil {
		return nil, fmt.Errorf("list jellyfin views: %w", err)
	}

	var libs []reconcile.Library
	for _, v := range views.Items {
		if v.CollectionType == collectionMusic {
			libs = append(libs, reconcile.Library{Key: v.ID, Title: v.Name})
		}
	}
	p.logger.Debug("Listed music libraries", zap.Int("count", len(libs)))
	return libs, nil
}

// FindArtist searches the library for artistName and applies the artist matching policy.
func (p *Provider) FindArtist(ctx context.Context, libraryKey, artistName string) (*reconcile.ArtistRef, error) {
	if !p.Configured() {
		return nil, nil
	}

	items, err := p.items(ctx, url.Values{
		"searchTerm":       {artistName},
		"IncludeItemTypes": {itemMusicArtist},
		"Recursive":        {"true"},
		"ParentId":         {libraryKey},
		"Limit":            {artistSearchLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("search jellyfin artists: %w", err)
	}

	candidates := make([]reconcile.ArtistRef, 0, len(items))
	for _, it := range items {
		candidates = append(candidates, reconcile.ArtistRef{ID: it.ID, Title: it.Name})
	}
	return p.matcher.MatchArtist(candidates, artistName), nil
}

// ListAlbums lists the albums credited to the artist id inside the library.
func (p *Provider) ListAlbums(ctx context.Context, libraryKey string, artist reconcile.ArtistRef, artistName string) ([]reconcile.Album, error) {
	if !p.Configured() {
		return nil, nil
	}

	items, err := p.items(ctx, url.Values{
		"ArtistIds":        {artist.ID},
		"IncludeItemTypes": {itemMusicAlbum},
		"Recursive":        {"true"},
		"ParentId":         {libraryKey},
		"Limit":            {albumListLimit},
	})
	if err != nil {
		return nil, fmt.Errorf("list jellyfin albums: %w", err)
	}

	albums := make([]reconcile.Album, 0, len(items))
	for _, it := range items {
		albums = append(albums, reconcile.Album{ID: it.ID, Title: it.Name, ArtistTitle: it.AlbumArtist})
	}
	return albums, nil
}

// ListTracks lists the audio items of an album.
func (p *Provider) ListTracks(ctx context.Context, album reconcile.Album) ([]reconcile.LibraryTrack, error) {
	if !p.Configured() {
		return nil, nil
	}

	items, err := p.items(ctx, url.Values{
		"ParentId":         {album.ID},
		"IncludeItemTypes": {itemAudio},
		"SortBy":           {"SortName"},
	})
	if err != nil {
		return nil, fmt.Errorf("list jellyfin tracks of %s: %w", album.ID, err)
	}

	tracks := make([]reconcile.LibraryTrack, 0, len(items))
	for _, it := range items {
		tracks = append(tracks, reconcile.LibraryTrack{Title: it.Name})
	}
	return tracks, nil
}

// Ping checks that the server answers an authenticated request.
func (p *Provider) Ping(ctx context.Context) error {
	if !p.Configured() {
		return reconcile.ErrNotConfigured
	}
	var info systemInfo
	if err := p.client.GetJSON(ctx, "/System/Info", nil, &info); err != nil {
		return fmt.Errorf("ping jellyfin: %w", err)
	}
	return nil
}

func (p *Provider) items(ctx context.Context, query url.Values) ([]item, error) {
	uid, err := p.user(ctx)
	if err != nil {
		return nil, err
	}
	var resp itemsResponse
	if err := p.client.GetJSON(ctx, "/Users/"+url.PathEscape(uid)+"/Items", query, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// user returns the configured user id, or resolves the first server user once.
// A failed lookup is retried on the next call. The shared lookup is detached
// from the caller that started it, so each caller only waits under its own ctx.
func (p *Provider) user(ctx context.Context) (string, error) {
	p.mu.RLock()
	uid := p.userID
	p.mu.RUnlock()
	if uid != "" {
		return uid, nil
	}

	ch := p.sf.DoChan("user", func() (interface{}, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.lookupTimeout())
		defer cancel()

		var users []user
		if err := p.client.GetJSON(lookupCtx, "/Users", nil, &users); err != nil {
			return "", fmt.Errorf("list jellyfin users: %w", err)
		}
		if len(users) == 0 {
			return "", ErrNoUsers
		}

		p.mu.Lock()
		p.userID = users[0].ID
		p.mu.Unlock()

		p.logger.Debug("Resolved user", zap.String("user", users[0].Name))
		return users[0].ID, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (p *Provider) lookupTimeout() time.Duration {
	if p.cfg.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(p.cfg.TimeoutSeconds) * time.Second
}
