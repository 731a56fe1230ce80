package cmd

import (
	"context"
	"fmt"
	"time"

	"releasedrop/core/config"
	"releasedrop/core/database"
	"releasedrop/core/logger"
	"releasedrop/core/reconcile"
	"releasedrop/core/similarity"
	"releasedrop/core/storage"
	"releasedrop/feature/artists"
	"releasedrop/feature/catalog"
	"releasedrop/feature/mediaserver/jellyfin"
	"releasedrop/feature/mediaserver/plex"
	"releasedrop/feature/releases"
	"releasedrop/feature/reports"

	"go.uber.org/zap"
)

// app holds everything built from the configuration.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	providers []reconcile.Provider
	service   *releases.Service
	artists   *artists.Service
	reports   *reports.Store
}

// newMatcher builds the matching policy from the configured thresholds.
func newMatcher(cfg config.Matching) reconcile.Matcher {
	return reconcile.Matcher{
		Similarity:      similarity.Ratio,
		AlbumThreshold:  cfg.AlbumThreshold,
		TrackThreshold:  cfg.TrackThreshold,
		ArtistThreshold: cfg.ArtistThreshold,
	}
}

// newEngines creates one engine per media server. Unconfigured servers are
// kept so the status route can report them.
func newEngines(cfg *config.Config, l *zap.Logger) ([]reconcile.Provider, []*reconcile.Engine) {
	matcher := newMatcher(cfg.Matching)
	providers := []reconcile.Provider{
		plex.New(cfg.Plex, matcher, l),
		jellyfin.New(cfg.Jellyfin, matcher, l),
	}

	timeout := time.Duration(cfg.Sweep.LibraryTimeoutSeconds) * time.Second
	engines := make([]*reconcile.Engine, 0, len(providers))
	for _, p := range providers {
		engines = append(engines, reconcile.NewEngine(p, matcher,
			reconcile.WithLogger(l),
			reconcile.WithLibraryTimeout(timeout),
		))
	}
	return providers, engines
}

// bootstrap loads the configuration and wires the database, media servers,
// catalog and report storage into a release service.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := releases.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	providers, engines := newEngines(cfg, l)
	opts := releases.Options{
		Parallelism: cfg.Sweep.Parallelism,
		MonthsBack:  cfg.Catalog.ReleaseMonthsBack,
	}

	if source := catalog.NewSpotify(ctx, cfg.Catalog); source != nil {
		opts.Catalog = source
	} else {
		l.Warn("Catalog credentials missing, artist refreshes are disabled and releases without stored tracks are checked by album only")
	}

	var store *reports.Store
	if cfg.Storage.Configured() {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		store = reports.NewStore(client, cfg.Storage, l)
		opts.Sink = store
	}

	for _, p := range providers {
		if c, ok := p.(reconcile.Configurable); ok && !c.Configured() {
			l.Info("Media server not configured", zap.String("provider", p.Name()))
		}
	}

	return &app{
		cfg:       cfg,
		logger:    l,
		providers: providers,
		service:   releases.NewService(repo, engines, l, opts),
		artists:   artists.NewService(repo, opts.Catalog, cfg.Catalog.ReleaseMonthsBack, l),
		reports:   store,
	}, nil
}
