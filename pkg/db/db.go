package db

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNoDatabaseURL is returned when no connection URL is configured.
var ErrNoDatabaseURL = errors.New("DATABASE_URL is required")

// Config holds database connection configuration
type Config struct {
	// URL is the postgres connection URL.
	URL string
	// Debug logs every SQL statement.
	Debug bool
}

// Connect opens a gorm connection to postgres.
func Connect(cfg Config) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, ErrNoDatabaseURL
	}

	return Open(postgres.New(postgres.Config{
		DSN:                  cfg.URL,
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), cfg.Debug)
}

// Open opens gorm on dialector with shiplog's settings. Tests pass a
// postgres dialector wrapping sqlmock.
func Open(dialector gorm.Dialector, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func gormConfig(debug bool) *gorm.Config {
	logMode := logger.Silent
	if debug {
		logMode = logger.Info
	}

	return &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold: 200 * time.Millisecond,
				LogLevel:      logMode,
				Colorful:      false,
			},
		),
		// Every write is a single statement.
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}
