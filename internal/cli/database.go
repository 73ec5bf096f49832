package cli

import (
	"context"
	"fmt"

	"github.com/sclera-app/sclera/internal/db"
	"github.com/sclera-app/sclera/internal/logging"
)

// openDatabase opens the sqlite database at the configured path and applies
// pending migrations.
func openDatabase(ctx context.Context) (*db.DB, error) {
	path, err := cfg.ResolveDatabasePath()
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	applied, err := database.MigrateUp(ctx)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	if applied > 0 {
		logger := logging.Component("cli")
		logger.Info().Int("applied", applied).Msg("database migrated")
	}

	return database, nil
}
