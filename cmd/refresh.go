package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh [artist-id...]",
	Short: "Fetch recent releases of followed artists",
	Long: `Fetch the releases of followed artists from the catalog and store the
ones dated within CATALOG_RELEASE_MONTHS_BACK months. Without arguments every
followed artist is refreshed.

Examples:
  refresh
  refresh 3 7`,
	RunE: runRefresh,
}

func init() {
	RootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ids := make([]uint, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil || id == 0 {
			return fmt.Errorf("invalid artist id %q", arg)
		}
		ids = append(ids, uint(id))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	if len(ids) == 0 {
		followed, err := a.artists.List(ctx)
		if err != nil {
			return fmt.Errorf("list artists: %w", err)
		}
		for _, artist := range followed {
			ids = append(ids, artist.ID)
		}
	}

	var failed, found int
	for _, id := range ids {
		res, err := a.artists.Refresh(ctx, id)
		if err != nil {
			failed++
			a.logger.Warn("Refresh failed", zap.Uint("artist_id", id), zap.Error(err))
			continue
		}
		found += res.NewReleases
	}

	a.logger.Info("Refresh finished",
		zap.Int("artists", len(ids)),
		zap.Int("new_releases", found),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d artists failed to refresh", failed, len(ids))
	}
	return nil
}
