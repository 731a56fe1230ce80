// Package releases tracks releases of followed artists and checks them
// against the configured media servers.
//
// # Components
//
//   - Repository: GORM persistence for artists, releases and library checks.
//     One check is kept per release and provider; a new check replaces it.
//   - Service: hydrates canonical track lists from the catalog, runs the
//     reconciliation engine for one release (CheckRelease) or all of them
//     (CheckAll) and stores the outcome. CheckAll hands its report to an
//     optional ReportSink.
//   - Handler: the /releases HTTP routes.
//
// # Routes
//
//	GET  /releases                      list (only_new, artist_id, limit)
//	POST /releases                      track a release
//	GET  /releases/stats                counts
//	GET  /releases/latest               releases of the last months (limit)
//	POST /releases/seen                 mark all seen
//	POST /releases/check-all/:provider  sweep every release
//	GET  /releases/:id                  release with checks
//	GET  /releases/:id/tracks           canonical tracks
//	GET  /releases/:id/checks           latest check per provider
//	POST /releases/:id/seen             mark one seen
//	POST /releases/:id/check/:provider  check one release
package releases
