// Package plex adapts a Plex Media Server to the reconcile.Provider contract.
//
// Music libraries are the sections of type "artist". Artists and albums are
// listed per section with the metadata types 8 and 9, and an album's tracks
// are read from its children key. All requests carry X-Plex-Token.
package plex
