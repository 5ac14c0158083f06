package cli

import (
	"fmt"
	"log"

	"github.com/mrlokans/bookcollection/internal/config"
	"github.com/mrlokans/bookcollection/internal/database"
)

// openDatabase opens the catalog database configured for a command.
func openDatabase(path, logLevel string) (*database.Database, error) {
	db, err := database.NewDatabase(path, database.ParseLogLevel(logLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func closeDatabase(db *database.Database) {
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// defaults returns cfg, or the built-in configuration when cfg is nil.
func defaults(cfg *config.Config) *config.Config {
	if cfg != nil {
		return cfg
	}
	return &config.Config{
		Database: config.Database{Path: config.DefaultDatabasePath, LogLevel: "warn"},
		Media:    config.Media{Dir: config.DefaultMediaDir},
	}
}
