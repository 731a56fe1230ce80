package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultLibraryTimeout bounds the provider calls made for one library.
const DefaultLibraryTimeout = 30 * time.Second

// Engine reconciles canonical releases against the libraries of one provider.
// An Engine is safe for concurrent use.
type Engine struct {
	provider       Provider
	matcher        Matcher
	logger         *zap.Logger
	libraryTimeout time.Duration
	albums         *AlbumCache
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLibraryTimeout bounds the work done against a single library.
func WithLibraryTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.libraryTimeout = d
		}
	}
}

// WithAlbumCache shares artist album listings between calls.
// The cache must not outlive one sweep.
func WithAlbumCache(c *AlbumCache) Option {
	return func(e *Engine) {
		e.albums = c
	}
}

// NewEngine creates an engine for the given provider.
func NewEngine(provider Provider, matcher Matcher, opts ...Option) *Engine {
	e := &Engine{
		provider:       provider,
		matcher:        matcher,
		logger:         zap.NewNop(),
		libraryTimeout: DefaultLibraryTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ProviderName returns the name of the provider the engine queries.
func (e *Engine) ProviderName() string {
	return e.provider.Name()
}

// libraryOutcome is what one library contributed to a reconciliation.
type libraryOutcome struct {
	match     AlbumMatch
	available []string
	missing   []string
}

// ReconcileRelease decides whether release exists in any library of the
// provider. Libraries are searched in provider order and the first accepted
// album wins; nothing is merged across libraries.
//
// Provider failures never escape: a library that errors or times out is
// logged, counted in LibraryErrors and skipped. A miss reports the best
// similarity ratio observed in any library as its confidence.
func (e *Engine) ReconcileRelease(ctx context.Context, release Release) Result {
	name := e.provider.Name()
	log := e.logger.With(
		zap.String("provider", name),
		zap.String("artist", release.ArtistName),
		zap.String("album", release.AlbumName),
	)

	libraries, err := e.provider.ListLibraries(ctx)
	if err != nil {
		log.Warn("Listing libraries failed", zap.Error(err))
		res := notFound(name, release, 0.0)
		res.LibraryErrors = 1
		return res
	}
	if len(libraries) == 0 {
		log.Debug("No music libraries available")
		return notFound(name, release, 0.0)
	}

	var (
		bestRatio float64
		searched  int
		failed    int
	)

	for _, lib := range libraries {
		if ctx.Err() != nil {
			break
		}
		searched++
		libLog := log.With(zap.String("library", lib.Title), zap.String("library_key", lib.Key))

		outcome, err := e.searchLibrary(ctx, lib, release)
		if err != nil {
			failed++
			libLog.Warn("Library search failed", zap.Error(err))
			continue
		}

		if outcome.match.Album == nil {
			if outcome.match.Confidence > bestRatio {
				bestRatio = outcome.match.Confidence
			}
			libLog.Debug("No album match", zap.Float64("best_ratio", outcome.match.Confidence))
			continue
		}

		album := outcome.match.Album
		libLog.Info("Album matched",
			zap.String("match_type", string(outcome.match.Type)),
			zap.Float64("confidence", outcome.match.Confidence),
			zap.String("library_album", album.Title),
			zap.Int("available", len(outcome.available)),
			zap.Int("missing", len(outcome.missing)),
		)

		return Result{
			Provider:          name,
			InLibrary:         true,
			MatchType:         outcome.match.Type,
			MatchConfidence:   outcome.match.Confidence,
			LibraryAlbumID:    album.ID,
			LibraryAlbumTitle: album.Title,
			LibraryKey:        lib.Key,
			AvailableTracks:   outcome.available,
			MissingTracks:     outcome.missing,
			LibrariesSearched: searched,
			LibraryErrors:     failed,
		}
	}

	log.Info("Album not found in any library",
		zap.Int("libraries", searched),
		zap.Int("failed", failed),
		zap.Float64("best_ratio", bestRatio),
	)
	res := notFound(name, release, bestRatio)
	res.LibrariesSearched = searched
	res.LibraryErrors = failed
	return res
}

// searchLibrary runs the artist, album and track lookups for one library
// under the library timeout.
func (e *Engine) searchLibrary(ctx context.Context, lib Library, release Release) (libraryOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, e.libraryTimeout)
	defer cancel()

	artist, err := e.provider.FindArtist(ctx, lib.Key, release.ArtistName)
	if err != nil {
		return libraryOutcome{}, fmt.Errorf("find artist: %w", err)
	}
	if artist == nil {
		return libraryOutcome{match: AlbumMatch{Type: MatchNone}}, nil
	}

	albums, err := e.listAlbums(ctx, lib.Key, *artist, release.ArtistName)
	if err != nil {
		return libraryOutcome{}, fmt.Errorf("list albums: %w", err)
	}

	// Duplicate titles fetch track lists to compare counts; keep them so the
	// winner is not fetched twice.
	fetched := make(map[string][]LibraryTrack)
	listTracks := func(ctx context.Context, album Album) ([]LibraryTrack, error) {
		if tracks, ok := fetched[album.ID]; ok {
			return tracks, nil
		}
		tracks, err := e.provider.ListTracks(ctx, album)
		if err != nil {
			return nil, err
		}
		fetched[album.ID] = tracks
		return tracks, nil
	}
	count := func(ctx context.Context, album Album) (int, error) {
		tracks, err := listTracks(ctx, album)
		return len(tracks), err
	}

	match, err := e.matcher.MatchAlbum(ctx, albums, release.AlbumName, len(release.Tracks), count)
	if err != nil {
		return libraryOutcome{}, err
	}
	if match.Album == nil {
		return libraryOutcome{match: match}, nil
	}

	if len(release.Tracks) == 0 {
		return libraryOutcome{match: match, available: []string{}, missing: []string{}}, nil
	}

	libTracks, err := listTracks(ctx, *match.Album)
	if err != nil {
		return libraryOutcome{}, fmt.Errorf("list tracks: %w", err)
	}
	available, missing := e.matcher.ReconcileTracks(release.Tracks, libTracks)
	return libraryOutcome{match: match, available: available, missing: missing}, nil
}

func (e *Engine) listAlbums(ctx context.Context, libraryKey string, artist ArtistRef, artistName string) ([]Album, error) {
	load := func(ctx context.Context) ([]Album, error) {
		return e.provider.ListAlbums(ctx, libraryKey, artist, artistName)
	}
	if e.albums == nil {
		return load(ctx)
	}
	return e.albums.Albums(ctx, albumCacheKey(libraryKey, artistName), load)
}
