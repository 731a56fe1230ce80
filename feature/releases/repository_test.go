package releases

import (
	"context"
	"errors"
	"testing"
	"time"

	"releasedrop/core/database"
	"releasedrop/core/reconcile"
	"releasedrop/feature/releases/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) *Repository {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	repo := NewRepository(db)
	require.NoError(t, repo.Migrate())
	return repo
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func seedRelease(t *testing.T, repo *Repository, spotifyID, name, date, artist string) *models.Release {
	ctx := context.Background()
	a := models.Artist{SpotifyID: "artist-" + artist, Name: artist}
	require.NoError(t, repo.UpsertArtist(ctx, &a))

	rel := models.Release{
		SpotifyID:   spotifyID,
		Name:        name,
		ReleaseType: "album",
		ReleaseDate: date,
		TotalTracks: 3,
		ArtistID:    a.ID,
	}
	require.NoError(t, repo.UpsertRelease(ctx, &rel))
	return &rel
}

func TestRepository_UpsertRelease(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	rel := seedRelease(t, repo, "sp1", "Thriller", "1982-11-30", "Michael Jackson")
	assert.NotZero(t, rel.ID)
	assert.True(t, rel.IsNew)

	require.NoError(t, repo.MarkSeen(ctx, rel.ID))

	again := models.Release{
		SpotifyID:   "sp1",
		Name:        "Thriller (Remastered)",
		ReleaseType: "album",
		ReleaseDate: "1982-11-30",
		TotalTracks: 9,
		ArtistID:    rel.ArtistID,
	}
	require.NoError(t, repo.UpsertRelease(ctx, &again))
	assert.Equal(t, rel.ID, again.ID)
	assert.False(t, again.IsNew)

	got, err := repo.GetRelease(ctx, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thriller (Remastered)", got.Name)
	assert.Equal(t, 9, got.TotalTracks)
	assert.False(t, got.IsNew)
	assert.Equal(t, "Michael Jackson", got.Artist.Name)
}

func TestRepository_UpsertArtist(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	a := models.Artist{SpotifyID: "a1", Name: "Daft Punk"}
	require.NoError(t, repo.UpsertArtist(ctx, &a))

	renamed := models.Artist{SpotifyID: "a1", Name: "Daft Punk (Duo)"}
	require.NoError(t, repo.UpsertArtist(ctx, &renamed))
	assert.Equal(t, a.ID, renamed.ID)

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalArtists)
}

func TestRepository_ListReleases(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	old := seedRelease(t, repo, "sp1", "Off the Wall", "1979-08-10", "Michael Jackson")
	seedRelease(t, repo, "sp2", "Thriller", "1982-11-30", "Michael Jackson")
	dp := seedRelease(t, repo, "sp3", "Discovery", "2001-03-12", "Daft Punk")
	require.NoError(t, repo.MarkSeen(ctx, old.ID))

	all, err := repo.ListReleases(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Discovery", "Thriller", "Off the Wall"}, []string{all[0].Name, all[1].Name, all[2].Name})
	assert.Equal(t, "Daft Punk", all[0].Artist.Name)

	onlyNew, err := repo.ListReleases(ctx, Filter{OnlyNew: true})
	require.NoError(t, err)
	assert.Len(t, onlyNew, 2)

	byArtist, err := repo.ListReleases(ctx, Filter{ArtistID: dp.ArtistID})
	require.NoError(t, err)
	require.Len(t, byArtist, 1)
	assert.Equal(t, "Discovery", byArtist[0].Name)

	limited, err := repo.ListReleases(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	since, err := repo.ListReleases(ctx, Filter{Since: "1982-11-30"})
	require.NoError(t, err)
	require.Len(t, since, 2)
	assert.Equal(t, "Discovery", since[0].Name)
	assert.Equal(t, "Thriller", since[1].Name)
}

func TestRepository_FollowArtist(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	mj := models.Artist{SpotifyID: "3fMbdgg4jU18AjLCKBhRSm", Name: "Michael Jackson"}
	require.NoError(t, repo.FollowArtist(ctx, &mj))
	assert.NotZero(t, mj.ID)

	again := models.Artist{SpotifyID: "3fMbdgg4jU18AjLCKBhRSm", Name: "MJ"}
	assert.ErrorIs(t, repo.FollowArtist(ctx, &again), ErrArtistFollowed)

	dp := models.Artist{SpotifyID: "4tZwfgrHOc3mvqYlEYSvVi", Name: "Daft Punk"}
	require.NoError(t, repo.FollowArtist(ctx, &dp))

	artists, err := repo.ListArtists(ctx)
	require.NoError(t, err)
	require.Len(t, artists, 2)
	assert.Equal(t, "Daft Punk", artists[0].Name)
	assert.Equal(t, "Michael Jackson", artists[1].Name)

	got, err := repo.GetArtist(ctx, mj.ID)
	require.NoError(t, err)
	assert.Nil(t, got.LastChecked)

	_, err = repo.GetArtist(ctx, 999)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestRepository_TouchArtist(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	mj := models.Artist{SpotifyID: "3fMbdgg4jU18AjLCKBhRSm", Name: "Michael Jackson"}
	require.NoError(t, repo.FollowArtist(ctx, &mj))

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, repo.TouchArtist(ctx, mj.ID, at))

	got, err := repo.GetArtist(ctx, mj.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastChecked)
	assert.True(t, at.Equal(*got.LastChecked))

	assert.ErrorIs(t, repo.TouchArtist(ctx, 999, at), ErrArtistNotFound)
}

func TestRepository_DeleteArtist(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	thriller := seedRelease(t, repo, "sp1", "Thriller", "1982-11-30", "Michael Jackson")
	discovery := seedRelease(t, repo, "sp2", "Discovery", "2001-03-12", "Daft Punk")
	check := models.LibraryCheck{ReleaseID: thriller.ID, Provider: "plex", MatchType: "none", CheckedAt: time.Now()}
	require.NoError(t, repo.SaveCheck(ctx, &check))

	removed, err := repo.DeleteArtist(ctx, thriller.ArtistID)
	require.NoError(t, err)
	assert.Equal(t, "Michael Jackson", removed.Name)

	_, err = repo.GetRelease(ctx, thriller.ID)
	assert.ErrorIs(t, err, ErrReleaseNotFound)
	checks, err := repo.ChecksFor(ctx, thriller.ID)
	require.NoError(t, err)
	assert.Empty(t, checks)

	_, err = repo.GetRelease(ctx, discovery.ID)
	assert.NoError(t, err)

	_, err = repo.DeleteArtist(ctx, thriller.ArtistID)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestRepository_KnownReleases(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedRelease(t, repo, "sp1", "Thriller", "1982-11-30", "Michael Jackson")

	known, err := repo.KnownReleases(ctx, []string{"sp1", "sp9"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"sp1": true}, known)

	known, err = repo.KnownReleases(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, known)
}

func TestRepository_GetReleaseNotFound(t *testing.T) {
	repo := setupRepo(t)
	_, err := repo.GetRelease(context.Background(), 42)
	assert.ErrorIs(t, err, ErrReleaseNotFound)
}

func TestRepository_SaveTracks(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	rel := seedRelease(t, repo, "sp1", "Thriller", "1982-11-30", "Michael Jackson")

	tracks := []reconcile.Track{{Name: "Billie Jean", TrackNumber: 6, DurationMs: 294000}}
	require.NoError(t, repo.SaveTracks(ctx, rel.ID, tracks))

	got, err := repo.GetRelease(ctx, rel.ID)
	require.NoError(t, err)
	assert.Equal(t, tracks, got.Tracks)

	assert.ErrorIs(t, repo.SaveTracks(ctx, 999, tracks), ErrReleaseNotFound)
}

func TestRepository_SaveCheckReplaces(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	rel := seedRelease(t, repo, "sp1", "Thriller", "1982-11-30", "Michael Jackson")

	first := models.LibraryCheck{
		ReleaseID:     rel.ID,
		Provider:      "plex",
		MatchType:     "none",
		MissingTracks: []string{"Thriller"},
		CheckedAt:     time.Now(),
	}
	require.NoError(t, repo.SaveCheck(ctx, &first))

	second := models.LibraryCheck{
		ReleaseID:       rel.ID,
		Provider:        "plex",
		InLibrary:       true,
		MatchType:       "exact",
		MatchConfidence: 1.0,
		AvailableTracks: []string{"Thriller"},
		MissingTracks:   []string{},
		CheckedAt:       time.Now(),
	}
	require.NoError(t, repo.SaveCheck(ctx, &second))

	jf := models.LibraryCheck{ReleaseID: rel.ID, Provider: "jellyfin", MatchType: "none", CheckedAt: time.Now()}
	require.NoError(t, repo.SaveCheck(ctx, &jf))

	checks, err := repo.ChecksFor(ctx, rel.ID)
	require.NoError(t, err)
	require.Len(t, checks, 2)
	assert.Equal(t, "jellyfin", checks[0].Provider)
	assert.Equal(t, "plex", checks[1].Provider)
	assert.True(t, checks[1].InLibrary)
	assert.Equal(t, "exact", checks[1].MatchType)
	assert.Equal(t, []string{"Thriller"}, checks[1].AvailableTracks)

	got, err := repo.GetRelease(ctx, rel.ID)
	require.NoError(t, err)
	assert.Len(t, got.Checks, 2)
}

func TestRepository_MarkSeen(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedRelease(t, repo, "sp1", "Thriller", "1982-11-30", "Michael Jackson")
	seedRelease(t, repo, "sp2", "Bad", "1987-08-31", "Michael Jackson")

	assert.ErrorIs(t, repo.MarkSeen(ctx, 999), ErrReleaseNotFound)

	n, err := repo.MarkAllSeen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.MarkAllSeen(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestRepository_Stats(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	seedRelease(t, repo, "sp1", "Thriller", "1982-11-30", "Michael Jackson")
	rel := seedRelease(t, repo, "sp2", "Discovery", "2001-03-12", "Daft Punk")
	require.NoError(t, repo.MarkSeen(ctx, rel.ID))

	single := models.Release{SpotifyID: "sp3", Name: "Get Lucky", ReleaseType: "single", ReleaseDate: "2013-04-19", ArtistID: rel.ArtistID}
	require.NoError(t, repo.UpsertRelease(ctx, &single))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalReleases)
	assert.Equal(t, int64(2), stats.NewReleases)
	assert.Equal(t, int64(2), stats.TotalArtists)
	assert.Equal(t, map[string]int64{"album": 2, "single": 1}, stats.ByType)
}

func TestRepository_DatabaseErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection lost"))
	_, err := repo.ListReleases(ctx, Filter{})
	assert.ErrorContains(t, err, "list releases")

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection lost"))
	_, err = repo.GetRelease(ctx, 1)
	assert.ErrorContains(t, err, "get release 1")
	assert.NotErrorIs(t, err, ErrReleaseNotFound)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection lost"))
	_, err = repo.ChecksFor(ctx, 1)
	assert.ErrorContains(t, err, "list checks of release 1")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE").WillReturnError(errors.New("read only"))
	mock.ExpectRollback()
	_, err = repo.MarkAllSeen(ctx)
	assert.ErrorContains(t, err, "mark all releases seen")

	assert.NoError(t, mock.ExpectationsWereMet())
}
