package models_test

import (
	"testing"
	"time"

	"releasedrop/core/reconcile"
	"releasedrop/feature/releases/models"

	"github.com/stretchr/testify/assert"
)

func TestNewLibraryCheck(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	res := reconcile.Result{
		Provider:          "plex",
		InLibrary:         true,
		MatchType:         reconcile.MatchSimilar,
		MatchConfidence:   0.9,
		LibraryAlbumID:    "200",
		LibraryAlbumTitle: "Random Access Memory",
		AvailableTracks:   []string{"Get Lucky"},
		MissingTracks:     []string{"Contact"},
		LibrariesSearched: 2,
		LibraryErrors:     1,
	}

	check := models.NewLibraryCheck(7, res, at)
	assert.Equal(t, uint(7), check.ReleaseID)
	assert.Equal(t, "plex", check.Provider)
	assert.Equal(t, "similar", check.MatchType)
	assert.Equal(t, 0.9, check.MatchConfidence)
	assert.Equal(t, []string{"Get Lucky"}, check.AvailableTracks)
	assert.Equal(t, []string{"Contact"}, check.MissingTracks)
	assert.Equal(t, 2, check.LibrariesSearched)
	assert.Equal(t, 1, check.LibraryErrors)
	assert.Equal(t, at, check.CheckedAt)
}

func TestRelease_Canonical(t *testing.T) {
	rel := models.Release{
		Name:   "Discovery",
		Artist: models.Artist{Name: "Daft Punk"},
		Tracks: []reconcile.Track{{Name: "One More Time", TrackNumber: 1}},
	}

	assert.Equal(t, reconcile.Release{
		AlbumName:  "Discovery",
		ArtistName: "Daft Punk",
		Tracks:     []reconcile.Track{{Name: "One More Time", TrackNumber: 1}},
	}, rel.Canonical())
}
