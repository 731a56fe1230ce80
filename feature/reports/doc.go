// Package reports keeps a JSON snapshot of every check-all sweep in object
// storage.
//
// Reports are written to reports/<provider>/<RFC 3339 time>.json in the
// configured bucket, which is created on first use. The time carries a fixed
// nanosecond fraction so keys of one provider sort by time. The feature is
// only enabled when a storage endpoint is configured.
//
// Routes:
//
//	GET /reports              list reports, newest first (?provider=plex)
//	GET /reports/<key>        one report as stored
package reports
