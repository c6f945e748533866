package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/moundworks/pitchlab/internal/config"
	"github.com/moundworks/pitchlab/internal/domain/outing"
	"github.com/moundworks/pitchlab/internal/domain/pitch"
	cachedrepo "github.com/moundworks/pitchlab/internal/infrastructure/repository/cache"
	"github.com/moundworks/pitchlab/internal/infrastructure/repository/memory"
	"github.com/moundworks/pitchlab/internal/infrastructure/repository/postgres"
	"github.com/moundworks/pitchlab/internal/interfaces/httpapi"
	"github.com/moundworks/pitchlab/internal/platform/cache"
	idgen "github.com/moundworks/pitchlab/internal/platform/id"
	"github.com/moundworks/pitchlab/internal/platform/logging"
	"github.com/moundworks/pitchlab/internal/usecase"
)

type repositories struct {
	outings outing.Repository
	pitches pitch.Repository
	labels  pitch.LabelRepository
	db      *sqlx.DB
}

// NewHTTPServer wires repositories, services, and the router into a ready
// http.Server. The returned cleanup releases the badge worker pool and the
// database handle; call it after Shutdown.
func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, func(), error) {
	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		repos.outings = cachedrepo.NewOutingRepository(repos.outings, store)
		repos.pitches = cachedrepo.NewPitchRepository(repos.pitches, store)
		repos.labels = cachedrepo.NewLabelRepository(repos.labels, store)
	}

	heatmapOpts := usecase.DefaultHeatmapOptions()
	if cfg.HeatmapGridSize > 0 {
		heatmapOpts.Params.GridSize = cfg.HeatmapGridSize
	}
	heatmapOpts.MinSizePx = cfg.HeatmapMinSizePx
	heatmapOpts.MaxSizePx = cfg.HeatmapMaxSizePx

	outingSvc := usecase.NewOutingService(
		repos.outings,
		repos.pitches,
		repos.labels,
		idgen.NewRandomGenerator(),
		logger,
	)
	badgeSvc, err := usecase.NewBadgeService(repos.outings, repos.pitches, cfg.BadgeWorkerCount, logger)
	if err != nil {
		if repos.db != nil {
			repos.db.Close()
		}
		return nil, nil, err
	}
	trendSvc := usecase.NewTrendService(repos.outings, logger)
	heatmapSvc := usecase.NewHeatmapService(repos.pitches, store, heatmapOpts, logger)

	handler := httpapi.NewHandler(outingSvc, badgeSvc, trendSvc, heatmapSvc, logging.Default())
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		badgeSvc.Close()
		if repos.db != nil {
			repos.db.Close()
		}
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	cleanup := func() {
		badgeSvc.Close()
		if repos.db != nil {
			repos.db.Close()
		}
	}

	return server, cleanup, nil
}

// buildRepositories selects the storage backend. An empty DB_URL runs the
// service against seeded in-memory repositories, which is how local charting
// demos and the test suite operate.
func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	if cfg.DBURL == "" {
		logger.Info("storage backend", "mode", "memory")
		return repositories{
			outings: memory.NewOutingRepository(memory.SeedOutings()),
			pitches: memory.NewPitchRepository(memory.SeedPitchEvents()),
			labels:  memory.NewLabelRepository(),
		}, nil
	}

	db, err := openDatabase(cfg.DBURL)
	if err != nil {
		return repositories{}, err
	}
	logger.Info("storage backend", "mode", "postgres", "database", dbNameFromURL(cfg.DBURL))

	return repositories{
		outings: postgres.NewOutingRepository(db),
		pitches: postgres.NewPitchRepository(db),
		labels:  postgres.NewLabelRepository(db),
		db:      db,
	}, nil
}

func openDatabase(dbURL string) (*sqlx.DB, error) {
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}
