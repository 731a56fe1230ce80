package reconcile

import (
	"context"
	"errors"
)

// Provider is the read-only contract every media-server adapter implements.
//
// A provider that is not configured (no base URL or credential) must return
// empty results and a nil error from every method. Transport failures are
// returned as errors so the engine can skip the affected library.
type Provider interface {
	// Name returns the provider identifier (e.g., "plex", "jellyfin").
	Name() string

	// ListLibraries returns the music libraries only, in server order.
	ListLibraries(ctx context.Context) ([]Library, error)

	// FindArtist looks up an artist by name inside one library using the
	// exact-then-similar policy of Matcher.MatchArtist. Nil means not found.
	FindArtist(ctx context.Context, libraryKey, artistName string) (*ArtistRef, error)

	// ListAlbums returns the candidate albums of an artist inside one library.
	ListAlbums(ctx context.Context, libraryKey string, artist ArtistRef, artistName string) ([]Album, error)

	// ListTracks returns the tracks of one album.
	ListTracks(ctx context.Context, album Album) ([]LibraryTrack, error)
}

// Pinger is implemented by providers that can report server reachability.
type Pinger interface {
	// Ping returns nil when the server answered an authenticated request.
	Ping(ctx context.Context) error
}

// Configurable is implemented by providers that can be left unconfigured.
type Configurable interface {
	Configured() bool
}

// ErrNotConfigured is returned by Ping when a provider has no server set up.
var ErrNotConfigured = errors.New("provider not configured")
