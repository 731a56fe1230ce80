package models

import (
	"time"

	"releasedrop/core/reconcile"
)

// Artist is a followed artist.
type Artist struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	SpotifyID   string     `gorm:"uniqueIndex;size:64;not null" json:"spotify_id"`
	Name        string     `gorm:"not null" json:"name"`
	AddedAt     time.Time  `gorm:"autoCreateTime" json:"added_at"`
	LastChecked *time.Time `json:"last_checked,omitempty"`
}

// Release is an album, single or EP of a followed artist.
type Release struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	SpotifyID   string `gorm:"uniqueIndex;size:64;not null" json:"spotify_id"`
	Name        string `gorm:"not null" json:"name"`
	// ReleaseType is album, single or ep.
	ReleaseType string `gorm:"size:16" json:"release_type"`
	// ReleaseDate is formatted YYYY-MM-DD.
	ReleaseDate string `gorm:"size:10;index" json:"release_date"`
	TotalTracks int    `json:"total_tracks"`

	ArtistID uint   `gorm:"not null;index" json:"artist_id"`
	Artist   Artist `gorm:"constraint:OnDelete:CASCADE" json:"artist"`

	IsNew        bool      `json:"is_new"`
	DiscoveredAt time.Time `gorm:"autoCreateTime" json:"discovered_at"`

	// Tracks caches the canonical track list fetched from the catalog.
	Tracks []reconcile.Track `gorm:"serializer:json" json:"tracks"`

	Checks []LibraryCheck `gorm:"constraint:OnDelete:CASCADE" json:"checks,omitempty"`
}

// LibraryCheck is the latest reconciliation of a release against one provider.
type LibraryCheck struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ReleaseID         uint      `gorm:"uniqueIndex:idx_check_release_provider;not null" json:"release_id"`
	Provider          string    `gorm:"uniqueIndex:idx_check_release_provider;size:32;not null" json:"provider"`
	InLibrary         bool      `json:"in_library"`
	MatchType         string    `gorm:"size:16" json:"match_type"`
	MatchConfidence   float64   `json:"match_confidence"`
	LibraryAlbumID    string    `json:"library_album_id,omitempty"`
	LibraryAlbumTitle string    `json:"library_album_title,omitempty"`
	AvailableTracks   []string  `gorm:"serializer:json" json:"available_tracks"`
	MissingTracks     []string  `gorm:"serializer:json" json:"missing_tracks"`
	LibrariesSearched int       `json:"libraries_searched"`
	LibraryErrors     int       `json:"library_errors"`
	CheckedAt         time.Time `json:"checked_at"`
}

// NewLibraryCheck records a reconciliation result for a release.
func NewLibraryCheck(releaseID uint, r reconcile.Result, at time.Time) LibraryCheck {
	return LibraryCheck{
		ReleaseID:         releaseID,
		Provider:          r.Provider,
		InLibrary:         r.InLibrary,
		MatchType:         string(r.MatchType),
		MatchConfidence:   r.MatchConfidence,
		LibraryAlbumID:    r.LibraryAlbumID,
		LibraryAlbumTitle: r.LibraryAlbumTitle,
		AvailableTracks:   r.AvailableTracks,
		MissingTracks:     r.MissingTracks,
		LibrariesSearched: r.LibrariesSearched,
		LibraryErrors:     r.LibraryErrors,
		CheckedAt:         at,
	}
}

// Canonical converts the stored release into the reconciliation input.
func (r Release) Canonical() reconcile.Release {
	return reconcile.Release{
		AlbumName:  r.Name,
		ArtistName: r.Artist.Name,
		Tracks:     r.Tracks,
	}
}

// Stats aggregates the stored releases.
type Stats struct {
	TotalReleases int64            `json:"total_releases"`
	NewReleases   int64            `json:"new_releases"`
	TotalArtists  int64            `json:"total_artists"`
	ByType        map[string]int64 `json:"by_type"`
}
