package reconcile

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultParallelism is the number of releases reconciled at once by Sweep.
const DefaultParallelism = 4

// Sweep reconciles many releases concurrently, at most parallelism at a time.
// Result i belongs to releases[i]. Albums listed for an artist are shared
// between the releases of this sweep only.
//
// Once ctx is done no further releases are started; those left over get a
// not-found result.
func (e *Engine) Sweep(ctx context.Context, releases []Release, parallelism int) []Result {
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	sweep := *e
	sweep.albums = NewAlbumCache(e.libraryTimeout)

	results := make([]Result, len(releases))
	var g errgroup.Group
	g.SetLimit(parallelism)

	for i := range releases {
		if ctx.Err() != nil {
			results[i] = notFound(e.provider.Name(), releases[i], 0.0)
			continue
		}
		g.Go(func() error {
			results[i] = sweep.ReconcileRelease(ctx, releases[i])
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Summary provides aggregate counts over a set of results.
type Summary struct {
	// Total is the number of results.
	Total int `json:"total"`
	// InLibrary counts results with an accepted album.
	InLibrary int `json:"in_library"`
	// Exact counts exact title matches.
	Exact int `json:"exact"`
	// Similar counts similarity matches.
	Similar int `json:"similar"`
	// NotFound counts misses.
	NotFound int `json:"not_found"`
	// Incomplete counts matched albums with at least one missing track.
	Incomplete int `json:"incomplete"`
	// LibraryErrors sums the per-library failures.
	LibraryErrors int `json:"library_errors"`
}

// Summarize aggregates results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.MatchType {
		case MatchExact:
			s.Exact++
		case MatchSimilar:
			s.Similar++
		default:
			s.NotFound++
		}
		if r.InLibrary {
			s.InLibrary++
			if len(r.MissingTracks) > 0 {
				s.Incomplete++
			}
		}
		s.LibraryErrors += r.LibraryErrors
	}
	return s
}
