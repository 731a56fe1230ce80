package cmd

import (
	"context"
	"errors"
	"fmt"

	"releasedrop/core/config"
	"releasedrop/core/logger"
	"releasedrop/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the match command
	matchAlbum      string
	matchCandidates []string
	matchTracks     []string
	matchLibrary    []string
)

// matchCmd runs the matcher offline, without any media server.
var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Try the album and track matcher on given names",
	Long: `Scores candidate album titles against a release title with the
configured thresholds, and optionally reconciles track names.

Examples:
  match --album "Random Access Memories" --candidate "Random Access Memories (Deluxe)"

  match --album Thriller --candidate Thriller \
    --track "Billie Jean" --track "Beat It" --library-track "billie jean"`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().StringVar(&matchAlbum, "album", "", "Release title to look for")
	matchCmd.Flags().StringArrayVar(&matchCandidates, "candidate", nil, "Library album title (repeatable)")
	matchCmd.Flags().StringArrayVar(&matchTracks, "track", nil, "Canonical track name (repeatable)")
	matchCmd.Flags().StringArrayVar(&matchLibrary, "library-track", nil, "Library track title (repeatable)")
	_ = matchCmd.MarkFlagRequired("album")

	RootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	if len(matchCandidates) == 0 {
		return errors.New("at least one --candidate is required")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	matcher := newMatcher(cfg.Matching)

	albums := make([]reconcile.Album, 0, len(matchCandidates))
	for i, title := range matchCandidates {
		albums = append(albums, reconcile.Album{ID: fmt.Sprint(i + 1), Title: title})
		l.Info("Candidate",
			zap.String("title", title),
			zap.Float64("ratio", matcher.Similarity(title, matchAlbum)),
		)
	}

	// Offline there are no track counts, so duplicate titles resolve to the first one.
	noCounts := func(context.Context, reconcile.Album) (int, error) { return 0, nil }
	match, err := matcher.MatchAlbum(cmd.Context(), albums, matchAlbum, len(matchTracks), noCounts)
	if err != nil {
		return err
	}

	if match.Album == nil {
		l.Info("No album accepted",
			zap.Float64("best_ratio", match.Confidence),
			zap.Float64("threshold", matcher.AlbumThreshold),
		)
		return nil
	}

	l.Info("Album accepted",
		zap.String("title", match.Album.Title),
		zap.String("match_type", string(match.Type)),
		zap.Float64("confidence", match.Confidence),
	)

	if len(matchTracks) > 0 {
		canonical := make([]reconcile.Track, 0, len(matchTracks))
		for _, name := range matchTracks {
			canonical = append(canonical, reconcile.Track{Name: name})
		}
		library := make([]reconcile.LibraryTrack, 0, len(matchLibrary))
		for _, title := range matchLibrary {
			library = append(library, reconcile.LibraryTrack{Title: title})
		}

		available, missing := matcher.ReconcileTracks(canonical, library)
		l.Info("Tracks reconciled",
			zap.Strings("available", available),
			zap.Strings("missing", missing),
		)
	}
	return nil
}
