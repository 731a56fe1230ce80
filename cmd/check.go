package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"releasedrop/feature/releases"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for check commands
	checkProvider string
	checkParallel int
)

// checkCmd is the parent command for library checks.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check tracked releases against a media server",
	Long: `Looks tracked releases up in the music libraries of a media server
and stores which tracks are available.`,
}

var checkReleaseCmd = &cobra.Command{
	Use:   "release <id>",
	Short: "Check one release",
	Long: `Check one tracked release.

Examples:
  check release 42 --provider plex`,
	Args: cobra.ExactArgs(1),
	RunE: runCheckRelease,
}

var checkAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Check every tracked release",
	Long: `Check every tracked release and store a sweep report when object
storage is configured.

Examples:
  check all --provider jellyfin --parallel 8`,
	RunE: runCheckAll,
}

func init() {
	checkCmd.PersistentFlags().StringVarP(&checkProvider, "provider", "p", "plex", "Media server to check against (plex, jellyfin)")
	checkAllCmd.Flags().IntVar(&checkParallel, "parallel", 0, "Releases checked concurrently (defaults to SWEEP_PARALLELISM)")

	checkCmd.AddCommand(checkReleaseCmd)
	checkCmd.AddCommand(checkAllCmd)
	RootCmd.AddCommand(checkCmd)
}

func runCheckRelease(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return fmt.Errorf("invalid release id %q", args[0])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	check, err := a.service.CheckRelease(ctx, uint(id), checkProvider)
	if err != nil {
		return fmt.Errorf("check release %d: %w", id, err)
	}

	a.logger.Info("Check result",
		zap.Uint("release_id", check.ReleaseID),
		zap.String("provider", check.Provider),
		zap.Bool("in_library", check.InLibrary),
		zap.String("match_type", check.MatchType),
		zap.Float64("confidence", check.MatchConfidence),
		zap.String("library_album", check.LibraryAlbumTitle),
		zap.Int("available", len(check.AvailableTracks)),
		zap.Strings("missing", check.MissingTracks),
		zap.Int("library_errors", check.LibraryErrors),
	)
	return nil
}

func runCheckAll(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if checkParallel > 0 {
		a.service = a.service.WithParallelism(checkParallel)
	}

	a.logger.Info("Starting library sweep", zap.String("provider", checkProvider))
	summary, err := a.service.CheckAll(ctx, checkProvider)
	if err != nil {
		return fmt.Errorf("check all: %w", err)
	}

	printSweepSummary(a.logger, summary)
	return nil
}

// printSweepSummary prints a sweep summary using logger.
func printSweepSummary(l *zap.Logger, s *releases.SweepSummary) {
	l.Info("Sweep report",
		zap.String("provider", s.Provider),
		zap.Int("total_releases", s.TotalReleases),
		zap.Int("checked", s.Checked),
		zap.Int("in_library", s.InLibrary),
		zap.Int("not_in_library", s.NotInLibrary),
		zap.Int("exact", s.Exact),
		zap.Int("similar", s.Similar),
		zap.Int("incomplete", s.Incomplete),
		zap.Int("library_errors", s.LibraryErrors),
		zap.Duration("took", s.FinishedAt.Sub(s.StartedAt)),
	)
	if s.ReportKey != "" {
		l.Info("Report stored", zap.String("key", s.ReportKey))
	}

	// Show sample of errors (max 5 for logger)
	maxShow := min(5, len(s.Errors))
	for _, msg := range s.Errors[:maxShow] {
		l.Warn("Sweep error", zap.String("error", msg))
	}
	if len(s.Errors) > maxShow {
		l.Info("Additional errors not shown", zap.Int("count", len(s.Errors)-maxShow))
	}
}
