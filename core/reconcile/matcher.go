package reconcile

import (
	"context"
	"fmt"
	"strings"

	"releasedrop/core/similarity"
)

const (
	// DefaultAlbumThreshold is the minimum ratio for a similar album match.
	DefaultAlbumThreshold = 0.85
	// DefaultTrackThreshold is stricter because track names are short and collide easily.
	DefaultTrackThreshold = 0.90
	// DefaultArtistThreshold is the minimum ratio for a similar artist match.
	DefaultArtistThreshold = 0.85
)

// SimilarityFunc scores two names in [0, 1].
type SimilarityFunc func(a, b string) float64

// TrackCounter returns the number of tracks an album holds in the library.
type TrackCounter func(ctx context.Context, album Album) (int, error)

// Matcher holds the fuzzy matching policy shared by albums, tracks and artists.
type Matcher struct {
	// Similarity is the name metric. similarity.Ratio when built by DefaultMatcher.
	Similarity SimilarityFunc

	// AlbumThreshold is the minimum ratio for MatchSimilar.
	AlbumThreshold float64

	// TrackThreshold is the minimum ratio for a fuzzy track hit.
	TrackThreshold float64

	// ArtistThreshold is the minimum ratio for a fuzzy artist hit.
	ArtistThreshold float64
}

// DefaultMatcher returns the matcher with the standard thresholds.
func DefaultMatcher() Matcher {
	return Matcher{
		Similarity:      similarity.Ratio,
		AlbumThreshold:  DefaultAlbumThreshold,
		TrackThreshold:  DefaultTrackThreshold,
		ArtistThreshold: DefaultArtistThreshold,
	}
}

// AlbumMatch is the outcome of MatchAlbum.
type AlbumMatch struct {
	// Album is the accepted candidate, nil when Type is MatchNone.
	Album *Album
	// Type classifies the match.
	Type MatchType
	// Confidence is 1.0 for exact matches and the best ratio otherwise.
	Confidence float64
}

// MatchAlbum selects the best candidate for targetTitle.
//
// Case-insensitive title equality wins outright. When several albums share
// the title, the one whose track count is closest to trackCountHint is kept,
// with the earliest candidate winning ties; count is only called in that case.
// Without an exact title the highest similarity ratio is accepted when it
// reaches AlbumThreshold.
func (m Matcher) MatchAlbum(ctx context.Context, albums []Album, targetTitle string, trackCountHint int, count TrackCounter) (AlbumMatch, error) {
	if len(albums) == 0 {
		return AlbumMatch{Type: MatchNone, Confidence: 0.0}, nil
	}

	target := strings.ToLower(targetTitle)
	var exact []int
	for i := range albums {
		if strings.ToLower(albums[i].Title) == target {
			exact = append(exact, i)
		}
	}

	switch {
	case len(exact) == 1:
		album := albums[exact[0]]
		return AlbumMatch{Album: &album, Type: MatchExact, Confidence: 1.0}, nil

	case len(exact) > 1:
		best := -1
		bestDiff := 0
		for _, idx := range exact {
			n, err := count(ctx, albums[idx])
			if err != nil {
				return AlbumMatch{}, fmt.Errorf("count tracks of album %s: %w", albums[idx].ID, err)
			}
			diff := abs(n - trackCountHint)
			if best < 0 || diff < bestDiff {
				best, bestDiff = idx, diff
			}
		}
		album := albums[best]
		return AlbumMatch{Album: &album, Type: MatchExact, Confidence: 1.0}, nil
	}

	bestRatio := 0.0
	bestIdx := -1
	for i := range albums {
		ratio := m.Similarity(albums[i].Title, targetTitle)
		if ratio > bestRatio {
			bestRatio, bestIdx = ratio, i
		}
	}

	if bestIdx >= 0 && bestRatio >= m.AlbumThreshold {
		album := albums[bestIdx]
		return AlbumMatch{Album: &album, Type: MatchSimilar, Confidence: bestRatio}, nil
	}
	return AlbumMatch{Type: MatchNone, Confidence: bestRatio}, nil
}

// MatchArtist applies the exact-then-similar policy over artist names.
// It returns nil when no candidate reaches ArtistThreshold.
func (m Matcher) MatchArtist(candidates []ArtistRef, artistName string) *ArtistRef {
	target := strings.ToLower(artistName)
	for i := range candidates {
		if strings.ToLower(candidates[i].Title) == target {
			found := candidates[i]
			return &found
		}
	}

	bestRatio := 0.0
	bestIdx := -1
	for i := range candidates {
		ratio := m.Similarity(candidates[i].Title, artistName)
		if ratio > bestRatio {
			bestRatio, bestIdx = ratio, i
		}
	}
	if bestIdx >= 0 && bestRatio >= m.ArtistThreshold {
		found := candidates[bestIdx]
		return &found
	}
	return nil
}

// ArtistMatches reports whether a library's artist credit refers to artistName.
func (m Matcher) ArtistMatches(credit, artistName string) bool {
	if strings.EqualFold(credit, artistName) {
		return true
	}
	return m.Similarity(credit, artistName) >= m.ArtistThreshold
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
