// Package integrations reports the state of the configured media servers.
//
// GET /integrations/status answers with one entry per provider:
//
//	{"plex": {"configured": true, "available": true},
//	 "jellyfin": {"configured": false, "available": false}}
package integrations
