package main

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/config"
	"github.com/doodlesbykumbi/shiplog/pkg/db"
	"github.com/doodlesbykumbi/shiplog/pkg/token"
)

// fatalf prints to stderr and exits non-zero.
func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// mustLoadConfig loads and validates configuration or exits.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func mustConnect(cfg *config.Config) *gorm.DB {
	gormDB, err := db.Connect(db.Config{URL: cfg.DatabaseURL, Debug: cfg.Debug()})
	if err != nil {
		fatalf("Unable to connect to DB: %v", err)
	}
	return gormDB
}

func mustIssuer(cfg *config.Config) *token.Issuer {
	issuer, err := token.NewIssuer([]byte(cfg.JWTSecret), token.WithTTL(cfg.TokenTTL()))
	if err != nil {
		fatalf("Unable to create token issuer: %v", err)
	}
	return issuer
}
