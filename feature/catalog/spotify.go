package catalog

import (
	"context"
	"errors"
	"fmt"

	"releasedrop/core/reconcile"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
)

// Source reads releases and track lists from a music catalog.
type Source interface {
	// AlbumTracks returns the canonical track list of a catalog album.
	AlbumTracks(ctx context.Context, albumID string) ([]reconcile.Track, error)
	// ArtistAlbums returns the albums and singles the artist released as
	// primary artist, in catalog order.
	ArtistAlbums(ctx context.Context, artistID string) ([]Album, error)
}

// Album is a release as listed on an artist's catalog page.
type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// Type is album, single or compilation.
	Type string `json:"type"`
	// ReleaseDate has year, month or day precision.
	ReleaseDate string `json:"release_date"`
}

// Spotify reads album track lists from the Spotify Web API.
type Spotify struct {
	client *spotify.Client
}

// NewSpotify authenticates with the client credentials flow.
// It returns nil when the credentials are not configured.
func NewSpotify(ctx context.Context, cfg Config) *Spotify {
	if !cfg.Configured() {
		return nil
	}
	creds := &clientcredentials.Config{
		ClientID:     cfg.SpotifyClientID,
		ClientSecret: cfg.SpotifyClientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	return NewSpotifyWithClient(spotify.New(creds.Client(ctx)))
}

// NewSpotifyWithClient wraps an existing client.
func NewSpotifyWithClient(client *spotify.Client) *Spotify {
	return &Spotify{client: client}
}

// AlbumTracks returns the first page of the album's tracks in album order.
func (s *Spotify) AlbumTracks(ctx context.Context, albumID string) ([]reconcile.Track, error) {
	page, err := s.client.GetAlbumTracks(ctx, spotify.ID(albumID), spotify.Limit(50))
	if err != nil {
		return nil, fmt.Errorf("get album tracks %s: %w", albumID, err)
	}

	tracks := make([]reconcile.Track, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		tracks = append(tracks, reconcile.Track{
			Name:        t.Name,
			DurationMs:  int(t.Duration),
			DiscNumber:  int(t.DiscNumber),
			TrackNumber: int(t.TrackNumber),
			ID:          string(t.ID),
		})
	}
	return tracks, nil
}

// ArtistAlbums walks every page of the artist's albums and singles.
// Compilations and releases the artist only appears on are skipped.
func (s *Spotify) ArtistAlbums(ctx context.Context, artistID string) ([]Album, error) {
	page, err := s.client.GetArtistAlbums(ctx, spotify.ID(artistID),
		[]spotify.AlbumType{spotify.AlbumTypeAlbum, spotify.AlbumTypeSingle},
		spotify.Limit(50),
	)
	if err != nil {
		return nil, fmt.Errorf("get artist albums %s: %w", artistID, err)
	}

	var albums []Album
	for {
		for _, a := range page.Albums {
			if a.AlbumGroup == "compilation" || a.AlbumGroup == "appears_on" {
				continue
			}
			albums = append(albums, Album{
				ID:          string(a.ID),
				Name:        a.Name,
				Type:        a.AlbumType,
				ReleaseDate: a.ReleaseDate,
			})
		}

		err = s.client.NextPage(ctx, page)
		if errors.Is(err, spotify.ErrNoMorePages) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("get artist albums %s: %w", artistID, err)
		}
	}
	return albums, nil
}
