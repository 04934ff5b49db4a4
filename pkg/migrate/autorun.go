package migrate

import (
	"context"
	"fmt"

	"github.com/panesgr/chatbot-backend/pkg/config"
	"github.com/panesgr/chatbot-backend/pkg/db"
	"github.com/panesgr/chatbot-backend/pkg/logger"
)

// MaybeRun executes migrations automatically when the durable store is
// configured and the feature flag is enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if client == nil || !cfg.Flags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	dialect := "sqlite3"
	if cfg.DB.IsPostgres() {
		dialect = "postgres"
	}

	ctx = logg.WithFields(ctx, map[string]any{"dialect": dialect, "dir": DefaultDir})
	logg.Info(ctx, "running Goose migrations (auto-run)")

	if err := Run(ctx, sqlDB, dialect, DefaultDir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
