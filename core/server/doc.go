// Package server holds the HTTP server configuration.
//
// The start command owns the Fiber application itself; this package only
// describes where it listens and whether the API key middleware is active.
package server
