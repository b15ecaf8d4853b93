package serve

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/atboard/board-service/internal/config"
	registrymigrate "github.com/atboard/board-service/internal/registry/migrate"
	registrystore "github.com/atboard/board-service/internal/registry/store"
	"github.com/atboard/board-service/internal/security"
	"github.com/atboard/board-service/internal/service"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v3"

	// Import all plugins to trigger init() registration
	storemetrics "github.com/atboard/board-service/internal/plugin/store/metrics"
	_ "github.com/atboard/board-service/internal/plugin/store/mongo"
)

// Command returns the serve sub-command.
func Command() *cli.Command {
	cfg := config.DefaultConfig()
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the board service",
		Flags: flags(&cfg),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(config.WithContext(ctx, &cfg), cfg)
		},
	}
}

func flags(cfg *config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "port",
			Category:    "Server:",
			Sources:     cli.EnvVars("BOARD_SERVICE_PORT"),
			Destination: &cfg.Port,
			Value:       cfg.Port,
			Usage:       "HTTP server port for health and metrics",
		},
		&cli.BoolFlag{
			Name:        "access-log",
			Category:    "Server:",
			Sources:     cli.EnvVars("BOARD_SERVICE_ACCESS_LOG"),
			Destination: &cfg.AccessLog,
			Usage:       "Enable HTTP access logging",
		},
		&cli.StringFlag{
			Name:        "db-url",
			Category:    "Database:",
			Sources:     cli.EnvVars("BOARD_SERVICE_DB_URL"),
			Destination: &cfg.DBURL,
			Value:       cfg.DBURL,
			Usage:       "MongoDB connection URL",
		},
		&cli.StringFlag{
			Name:        "db-name",
			Category:    "Database:",
			Sources:     cli.EnvVars("BOARD_SERVICE_DB_NAME"),
			Destination: &cfg.DBName,
			Value:       cfg.DBName,
			Usage:       "MongoDB database name",
		},
		&cli.BoolFlag{
			Name:        "db-migrate-at-start",
			Category:    "Database:",
			Sources:     cli.EnvVars("BOARD_SERVICE_DB_MIGRATE_AT_START"),
			Destination: &cfg.DatastoreMigrateAtStart,
			Value:       cfg.DatastoreMigrateAtStart,
			Usage:       "Create collections and indexes on startup",
		},
		&cli.StringFlag{
			Name:        "sweep-spec",
			Category:    "Sweep:",
			Sources:     cli.EnvVars("BOARD_SERVICE_SWEEP_SPEC"),
			Destination: &cfg.SweepSpec,
			Value:       cfg.SweepSpec,
			Usage:       "Cron spec for the staleness sweep",
		},
		&cli.StringFlag{
			Name:        "sweep-timezone",
			Category:    "Sweep:",
			Sources:     cli.EnvVars("BOARD_SERVICE_SWEEP_TIMEZONE"),
			Destination: &cfg.SweepTimezone,
			Value:       cfg.SweepTimezone,
			Usage:       "Timezone the sweep schedule is evaluated in",
		},
		&cli.DurationFlag{
			Name:        "sweep-window",
			Category:    "Sweep:",
			Sources:     cli.EnvVars("BOARD_SERVICE_SWEEP_WINDOW"),
			Destination: &cfg.SweepWindow,
			Value:       cfg.SweepWindow,
			Usage:       "Inactivity window after which time-limited topics are deactivated",
		},
		&cli.StringFlag{
			Name:        "metrics-labels",
			Category:    "Metrics:",
			Sources:     cli.EnvVars("BOARD_SERVICE_METRICS_LABELS"),
			Destination: &cfg.MetricsLabels,
			Value:       cfg.MetricsLabels,
			Usage:       "Comma-separated key=value constant labels for all metrics",
		},
	}
}

func run(ctx context.Context, cfg config.Config) error {
	labels, err := security.ParseMetricsLabels(cfg.MetricsLabels)
	if err != nil {
		return err
	}
	security.InitMetrics(labels)

	for _, m := range registrymigrate.All() {
		if err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.Name(), err)
		}
	}

	loader, err := registrystore.Select(cfg.DatastoreType)
	if err != nil {
		return err
	}
	store, err := loader(ctx)
	if err != nil {
		return err
	}
	store = storemetrics.Wrap(store)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.Close(shutdownCtx); err != nil {
			log.Error("Store close failed", "err", err)
		}
	}()

	loc, err := cfg.SweepLocation()
	if err != nil {
		return fmt.Errorf("invalid sweep timezone %q: %w", cfg.SweepTimezone, err)
	}
	sweeper, err := service.NewSweeper(store, cfg.SweepSpec, loc, cfg.SweepWindow)
	if err != nil {
		return err
	}
	sweeper.Start()
	defer func() { <-sweeper.Stop().Done() }()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), security.MetricsMiddleware())
	if cfg.AccessLog {
		router.Use(security.AccessLogMiddleware("/health", "/ready", "/metrics"))
	}
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	router.GET("/ready", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "READY"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Board service listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
