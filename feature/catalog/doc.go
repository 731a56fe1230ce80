// Package catalog reads releases and canonical track lists from the music
// catalog.
//
// Spotify is queried with the client credentials flow. An artist's albums and
// singles feed the artist refresh; album tracks fill in releases that have no
// track list cached yet.
package catalog
