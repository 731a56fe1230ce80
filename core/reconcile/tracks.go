package reconcile

import "strings"

// ReconcileTracks partitions the canonical track names into those present in
// the library album and those missing from it.
//
// A canonical name is available when it equals a library title after case
// folding, or when any library title scores at least TrackThreshold. Names are
// reported as sets in first-appearance order, so a name listed twice in the
// canonical release is reported once. Both slices are non-nil.
func (m Matcher) ReconcileTracks(canonical []Track, library []LibraryTrack) (available, missing []string) {
	available = []string{}
	missing = []string{}

	titles := make(map[string]struct{}, len(library))
	for _, lt := range library {
		titles[strings.ToLower(lt.Title)] = struct{}{}
	}

	for _, name := range uniqueNames(canonical) {
		if _, ok := titles[strings.ToLower(name)]; ok {
			available = append(available, name)
			continue
		}
		if m.fuzzyTrackHit(name, library) {
			available = append(available, name)
			continue
		}
		missing = append(missing, name)
	}
	return available, missing
}

func (m Matcher) fuzzyTrackHit(name string, library []LibraryTrack) bool {
	for _, lt := range library {
		if m.Similarity(name, lt.Title) >= m.TrackThreshold {
			return true
		}
	}
	return false
}
