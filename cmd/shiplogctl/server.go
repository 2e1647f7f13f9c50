package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/shiplog/pkg/config"
	"github.com/doodlesbykumbi/shiplog/pkg/credential"
	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/server/endpoints"
)

const shutdownTimeout = 10 * time.Second

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the shiplog API server",
	Long: `Run the shiplog API server.

The server requires JWT_SECRET and DATABASE_URL, from the environment or
shiplog.yml. A missing secret is a fatal startup error.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fatalf("Failed to load configuration: %v", err)
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind-address") {
			cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
		}
		if err := cfg.Validate(); err != nil {
			fatalf("Invalid configuration: %v", err)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(cfg.DatabaseURL); err != nil {
				fatalf("Migration failed: %v", err)
			}
		}

		gormDB := mustConnect(cfg)
		s := server.NewServer(cfg, server.GormStores(gormDB), mustIssuer(cfg), credential.NewHasher(cfg.BcryptCost))
		endpoints.RegisterAll(s)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Printf("Running server at http://%s in %s mode...\n", s.Addr(), cfg.Mode)
			errCh <- s.Start()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				log.Fatal(err)
			}
		case <-ctx.Done():
			log.Println("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := s.Shutdown(shutdownCtx); err != nil {
				log.Fatalf("Shutdown failed: %v", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 3000, "server listen port (overrides PORT)")
	serverCmd.Flags().StringP("bind-address", "b", "0.0.0.0", "server bind address (overrides BIND_ADDRESS)")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
