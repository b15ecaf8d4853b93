package migrate

import (
	"context"
	"fmt"

	"github.com/atboard/board-service/internal/config"
	registrymigrate "github.com/atboard/board-service/internal/registry/migrate"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	_ "github.com/atboard/board-service/internal/plugin/store/mongo"
)

// Command returns the migrate sub-command.
func Command() *cli.Command {
	cfg := config.DefaultConfig()
	cfg.DatastoreMigrateAtStart = true
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create collections and indexes, then exit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "db-url",
				Sources:     cli.EnvVars("BOARD_SERVICE_DB_URL"),
				Destination: &cfg.DBURL,
				Value:       cfg.DBURL,
				Usage:       "MongoDB connection URL",
			},
			&cli.StringFlag{
				Name:        "db-name",
				Sources:     cli.EnvVars("BOARD_SERVICE_DB_NAME"),
				Destination: &cfg.DBName,
				Value:       cfg.DBName,
				Usage:       "MongoDB database name",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			ctx = config.WithContext(ctx, &cfg)
			for _, m := range registrymigrate.All() {
				if err := m.Migrate(ctx); err != nil {
					return fmt.Errorf("migration %s failed: %w", m.Name(), err)
				}
			}
			log.Info("Migrations complete")
			return nil
		},
	}
}
