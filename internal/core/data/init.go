package data

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dcrodman/wordduel/internal/core"
)

// Open connects to the database configured in cfg and migrates the schema.
// It returns nil without an error when no engine is configured.
func Open(cfg *core.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(cfg.Database.Engine) {
	case "":
		return nil, nil
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.Filename)
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL())
	default:
		return nil, fmt.Errorf("unsupported database engine: %s", cfg.Database.Engine)
	}

	// By default only log errors but enable full SQL query prints-to-console with debug mode
	log := logger.Default.LogMode(logger.Error)
	if cfg.Debugging.DatabaseLoggingEnabled {
		log = logger.Default.LogMode(logger.Info)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: log})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := db.AutoMigrate(&MatchRecord{}); err != nil {
		return nil, fmt.Errorf("error auto migrating db: %w", err)
	}
	return db, nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	database, err := db.DB()
	if err != nil {
		return fmt.Errorf("error while getting current connection: %w", err)
	}
	if err := database.Close(); err != nil {
		return fmt.Errorf("error while closing database connection: %w", err)
	}
	return nil
}
