// Package reconcile decides whether a canonical release exists in a media
// server library, and which of its tracks are present or missing.
//
// # Architecture
//
// The package consists of four components:
//
// 1. Matcher: the fuzzy matching policy. MatchAlbum picks an album among the
//    candidates of an artist (exact title first, duplicate titles resolved by
//    track count, similarity fallback), ReconcileTracks partitions canonical
//    tracks into available and missing, MatchArtist is the shared artist lookup
//    used by providers.
//
// 2. Provider: the read-only contract each media server adapter implements
//    (list libraries, find artist, list albums, list tracks). The engine never
//    sees wire formats.
//
// 3. Engine: searches libraries in provider order and stops at the first
//    accepted album. Per-library failures are logged and skipped; a result is
//    always returned.
//
// 4. Sweep and AlbumCache: bounded-parallel reconciliation of many releases,
//    sharing artist album listings for the duration of one sweep.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(plexProvider, reconcile.DefaultMatcher(),
//	    reconcile.WithLogger(logger),
//	    reconcile.WithLibraryTimeout(30*time.Second),
//	)
//
//	// One release
//	result := engine.ReconcileRelease(ctx, release)
//
//	// Many releases, four at a time
//	results := engine.Sweep(ctx, releases, 4)
package reconcile
