package reconcile

// MatchType classifies how a release was located in a library.
type MatchType string

const (
	// MatchExact means the album title matched case-insensitively.
	MatchExact MatchType = "exact"
	// MatchSimilar means the best album title reached the similarity threshold.
	MatchSimilar MatchType = "similar"
	// MatchNone means no album was accepted.
	MatchNone MatchType = "none"
)

// Track is one entry of a canonical release's track list.
// Only Name takes part in matching; the other fields pass through untouched.
type Track struct {
	Name        string `json:"name"`
	DurationMs  int    `json:"duration_ms,omitempty"`
	DiscNumber  int    `json:"disc_number,omitempty"`
	TrackNumber int    `json:"track_number,omitempty"`
	ID          string `json:"id,omitempty"`
}

// Release is the canonical release as reported by the music catalog.
type Release struct {
	AlbumName  string  `json:"album_name"`
	ArtistName string  `json:"artist_name"`
	Tracks     []Track `json:"tracks"`
}

// TrackNames returns the name of every canonical track, collapsing duplicates.
func (r Release) TrackNames() []string {
	return uniqueNames(r.Tracks)
}

// Library is a music collection exposed by a media server.
type Library struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// ArtistRef identifies an artist inside one library.
type ArtistRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Album is a library album candidate.
type Album struct {
	// ID is the provider's stable identifier (Plex ratingKey, Jellyfin item id).
	ID string `json:"id"`
	// Key locates the album's children for providers that address them by path.
	Key         string `json:"key,omitempty"`
	Title       string `json:"title"`
	ArtistTitle string `json:"artist_title,omitempty"`
}

// LibraryTrack is a track as listed by a media server.
type LibraryTrack struct {
	Title string `json:"title"`
}

// Result is the outcome of reconciling one release against one provider.
type Result struct {
	// Provider is the name of the media server that was queried.
	Provider string `json:"provider"`

	// InLibrary reports whether an album was accepted.
	InLibrary bool `json:"in_library"`

	// MatchType is exact, similar or none.
	MatchType MatchType `json:"match_type"`

	// MatchConfidence is 1.0 for exact matches, the similarity ratio otherwise.
	// For a miss it is the best ratio observed, which is diagnostic only.
	MatchConfidence float64 `json:"match_confidence"`

	// LibraryAlbumID is the matched album's provider id, empty on a miss.
	LibraryAlbumID string `json:"library_album_id,omitempty"`

	// LibraryAlbumTitle is the matched album's title as stored in the library.
	LibraryAlbumTitle string `json:"library_album_title,omitempty"`

	// LibraryKey is the library that produced the match.
	LibraryKey string `json:"library_key,omitempty"`

	// AvailableTracks lists canonical track names found in the matched album.
	AvailableTracks []string `json:"available_tracks"`

	// MissingTracks lists canonical track names absent from the matched album.
	MissingTracks []string `json:"missing_tracks"`

	// LibrariesSearched counts libraries the engine attempted.
	LibrariesSearched int `json:"libraries_searched"`

	// LibraryErrors counts libraries skipped because of a provider failure.
	LibraryErrors int `json:"library_errors"`
}

// notFound builds the miss result for a release.
func notFound(provider string, release Release, confidence float64) Result {
	return Result{
		Provider:        provider,
		InLibrary:       false,
		MatchType:       MatchNone,
		MatchConfidence: confidence,
		AvailableTracks: []string{},
		MissingTracks:   release.TrackNames(),
	}
}

func uniqueNames(tracks []Track) []string {
	names := make([]string, 0, len(tracks))
	seen := make(map[string]struct{}, len(tracks))
	for _, t := range tracks {
		if _, ok := seen[t.Name]; ok {
			continue
		}
		seen[t.Name] = struct{}{}
		names = append(names, t.Name)
	}
	return names
}
