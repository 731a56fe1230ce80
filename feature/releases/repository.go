package releases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"releasedrop/core/reconcile"
	"releasedrop/feature/releases/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrReleaseNotFound is returned when no release has the requested id.
	ErrReleaseNotFound = errors.New("release not found")
	// ErrArtistNotFound is returned when no artist has the requested id.
	ErrArtistNotFound = errors.New("artist not found")
	// ErrArtistFollowed is returned when following an artist twice.
	ErrArtistFollowed = errors.New("artist is already being followed")
)

// Filter narrows ListReleases.
type Filter struct {
	// OnlyNew keeps releases not yet marked as seen.
	OnlyNew bool
	// ArtistID keeps the releases of one artist when non-zero.
	ArtistID uint
	// Since keeps releases dated on or after this YYYY-MM-DD day when set.
	Since string
	// Limit caps the number of rows when positive.
	Limit int
}

// Repository persists artists, releases and library checks.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository on db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tables.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Artist{}, &models.Release{}, &models.LibraryCheck{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// UpsertArtist inserts the artist or refreshes the name of the stored one.
// artist.ID is set on return.
func (r *Repository) UpsertArtist(ctx context.Context, artist *models.Artist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Artist
		err := tx.Where("spotify_id = ?", artist.SpotifyID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(artist).Error
		case err != nil:
			return err
		}

		artist.ID = existing.ID
		artist.AddedAt = existing.AddedAt
		return tx.Model(&existing).Update("name", artist.Name).Error
	})
}

// FollowArtist stores a newly followed artist. artist.ID is set on return.
func (r *Repository) FollowArtist(ctx context.Context, artist *models.Artist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Artist{}).Where("spotify_id = ?", artist.SpotifyID).Count(&count).Error; err != nil {
			return fmt.Errorf("follow artist %s: %w", artist.SpotifyID, err)
		}
		if count > 0 {
			return ErrArtistFollowed
		}
		if err := tx.Create(artist).Error; err != nil {
			return fmt.Errorf("follow artist %s: %w", artist.SpotifyID, err)
		}
		return nil
	})
}

// ListArtists returns the followed artists ordered by name.
func (r *Repository) ListArtists(ctx context.Context) ([]models.Artist, error) {
	var artists []models.Artist
	if err := r.db.WithContext(ctx).Order("name").Order("id").Find(&artists).Error; err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	return artists, nil
}

// GetArtist loads one followed artist.
func (r *Repository) GetArtist(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).First(&artist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get artist %d: %w", id, err)
	}
	return &artist, nil
}

// DeleteArtist removes the artist with its releases and their checks and
// returns the removed artist.
func (r *Repository) DeleteArtist(ctx context.Context, id uint) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artist, id).Error; err != nil {
			return err
		}
		releaseIDs := tx.Model(&models.Release{}).Select("id").Where("artist_id = ?", id)
		if err := tx.Where("release_id IN (?)", releaseIDs).Delete(&models.LibraryCheck{}).Error; err != nil {
			return err
		}
		if err := tx.Where("artist_id = ?", id).Delete(&models.Release{}).Error; err != nil {
			return err
		}
		return tx.Delete(&artist).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrArtistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete artist %d: %w", id, err)
	}
	return &artist, nil
}

// TouchArtist records when the artist's releases were last fetched.
func (r *Repository) TouchArtist(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&models.Artist{}).Where("id = ?", id).Update("last_checked", at)
	if res.Error != nil {
		return fmt.Errorf("touch artist %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrArtistNotFound
	}
	return nil
}

// KnownReleases reports which of the catalog ids are already stored.
func (r *Repository) KnownReleases(ctx context.Context, spotifyIDs []string) (map[string]bool, error) {
	known := make(map[string]bool, len(spotifyIDs))
	if len(spotifyIDs) == 0 {
		return known, nil
	}

	var stored []string
	err := r.db.WithContext(ctx).Model(&models.Release{}).
		Where("spotify_id IN ?", spotifyIDs).
		Pluck("spotify_id", &stored).Error
	if err != nil {
		return nil, fmt.Errorf("look up releases: %w", err)
	}
	for _, id := range stored {
		known[id] = true
	}
	return known, nil
}

// UpsertRelease inserts the release or refreshes the catalog fields of the
// stored one. A new release is flagged as new; an existing one keeps its
// seen state and cached tracks. release.ID is set on return.
func (r *Repository) UpsertRelease(ctx context.Context, release *models.Release) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Release
		err := tx.Where("spotify_id = ?", release.SpotifyID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			release.IsNew = true
			return tx.Omit(clause.Associations).Create(release).Error
		case err != nil:
			return err
		}

		release.ID = existing.ID
		release.IsNew = existing.IsNew
		release.DiscoveredAt = existing.DiscoveredAt
		if len(release.Tracks) == 0 {
			release.Tracks = existing.Tracks
		}
		return tx.Model(&existing).
			Select("Name", "ReleaseType", "ReleaseDate", "TotalTracks", "ArtistID", "Tracks").
			Updates(release).Error
	})
}

// ListReleases returns releases with their artist, newest release date first.
func (r *Repository) ListReleases(ctx context.Context, f Filter) ([]models.Release, error) {
	q := r.db.WithContext(ctx).Preload("Artist")
	if f.OnlyNew {
		q = q.Where("is_new = ?", true)
	}
	if f.ArtistID != 0 {
		q = q.Where("artist_id = ?", f.ArtistID)
	}
	if f.Since != "" {
		q = q.Where("release_date >= ?", f.Since)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var releases []models.Release
	if err := q.Order("release_date DESC").Order("id DESC").Find(&releases).Error; err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}
	return releases, nil
}

// GetRelease loads one release with its artist and library checks.
func (r *Repository) GetRelease(ctx context.Context, id uint) (*models.Release, error) {
	var release models.Release
	err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Checks", func(db *gorm.DB) *gorm.DB { return db.Order("provider") }).
		First(&release, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReleaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get release %d: %w", id, err)
	}
	return &release, nil
}

// SaveTracks caches the canonical track list of a release.
func (r *Repository) SaveTracks(ctx context.Context, id uint, tracks []reconcile.Track) error {
	release := models.Release{ID: id, Tracks: tracks}
	res := r.db.WithContext(ctx).Model(&release).Select("Tracks").Updates(&release)
	if res.Error != nil {
		return fmt.Errorf("save tracks of release %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReleaseNotFound
	}
	return nil
}

// SaveCheck stores the check, replacing the previous one for the same
// release and provider.
func (r *Repository) SaveCheck(ctx context.Context, check *models.LibraryCheck) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "release_id"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"in_library", "match_type", "match_confidence", "library_album_id",
			"library_album_title", "available_tracks", "missing_tracks",
			"libraries_searched", "library_errors", "checked_at",
		}),
	}).Create(check).Error
	if err != nil {
		return fmt.Errorf("save %s check of release %d: %w", check.Provider, check.ReleaseID, err)
	}
	return nil
}

// ChecksFor returns the stored checks of a release ordered by provider.
func (r *Repository) ChecksFor(ctx context.Context, releaseID uint) ([]models.LibraryCheck, error) {
	var checks []models.LibraryCheck
	err := r.db.WithContext(ctx).Where("release_id = ?", releaseID).Order("provider").Find(&checks).Error
	if err != nil {
		return nil, fmt.Errorf("list checks of release %d: %w", releaseID, err)
	}
	return checks, nil
}

// MarkSeen clears the new flag of one release.
func (r *Repository) MarkSeen(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Release{}).Where("id = ?", id).Update("is_new", false)
	if res.Error != nil {
		return fmt.Errorf("mark release %d seen: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// Also zero when the row was already seen, so tell the two apart.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Release{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("mark release %d seen: %w", id, err)
		}
		if count == 0 {
			return ErrReleaseNotFound
		}
	}
	return nil
}

// MarkAllSeen clears the new flag of every release and returns how many changed.
func (r *Repository) MarkAllSeen(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Release{}).Where("is_new = ?", true).Update("is_new", false)
	if res.Error != nil {
		return 0, fmt.Errorf("mark all releases seen: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Stats counts releases, new releases, artists and releases per type.
func (r *Repository) Stats(ctx context.Context) (models.Stats, error) {
	db := r.db.WithContext(ctx)
	stats := models.Stats{ByType: map[string]int64{}}

	if err := db.Model(&models.Release{}).Count(&stats.TotalReleases).Error; err != nil {
		return stats, fmt.Errorf("count releases: %w", err)
	}
	if err := db.Model(&models.Release{}).Where("is_new = ?", true).Count(&stats.NewReleases).Error; err != nil {
		return stats, fmt.Errorf("count new releases: %w", err)
	}
	if err := db.Model(&models.Artist{}).Count(&stats.TotalArtists).Error; err != nil {
		return stats, fmt.Errorf("count artists: %w", err)
	}

	var rows []struct {
		ReleaseType string
		Count       int64
	}
	err := db.Model(&models.Release{}).
		Select("release_type, COUNT(*) AS count").
		Group("release_type").
		Scan(&rows).Error
	if err != nil {
		return stats, fmt.Errorf("count releases by type: %w", err)
	}
	for _, row := range rows {
		stats.ByType[row.ReleaseType] = row.Count
	}
	return stats, nil
}
