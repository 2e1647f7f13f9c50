package integration

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/shiplog/pkg/config"
	"github.com/doodlesbykumbi/shiplog/pkg/credential"
	"github.com/doodlesbykumbi/shiplog/pkg/db"
	"github.com/doodlesbykumbi/shiplog/pkg/server"
	"github.com/doodlesbykumbi/shiplog/pkg/server/endpoints"
	"github.com/doodlesbykumbi/shiplog/pkg/token"
)

const jwtSecret = "integration-secret"

// TestContext holds the database container and the server under test.
type TestContext struct {
	DB          *gorm.DB
	Container   *tcpostgres.PostgresContainer
	DatabaseURL string
	ServerURL   string
	HTTPClient  *http.Client

	inline        *httptest.Server
	serverProcess *exec.Cmd
}

// NewTestContext starts postgres, applies migrations and starts shiplog.
// SHIPLOG_BINARY selects a built binary; otherwise the server runs in-process.
func NewTestContext() (*TestContext, error) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("shiplog"),
		tcpostgres.WithUsername("shiplog"),
		tcpostgres.WithPassword("shiplog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	tc := &TestContext{
		Container:  container,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}

	host, err := container.Host(ctx)
	if err != nil {
		tc.Close()
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		tc.Close()
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	tc.DatabaseURL = fmt.Sprintf("postgres://shiplog:shiplog@%s:%s/shiplog?sslmode=disable", host, port.Port())

	if err := tc.migrate(); err != nil {
		tc.Close()
		return nil, err
	}

	tc.DB, err = db.Connect(db.Config{URL: tc.DatabaseURL})
	if err != nil {
		tc.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if binary := os.Getenv("SHIPLOG_BINARY"); binary != "" {
		err = tc.startBinary(binary)
	} else {
		err = tc.startInline()
	}
	if err != nil {
		tc.Close()
		return nil, err
	}

	return tc, nil
}

func (tc *TestContext) migrate() error {
	src, err := db.Embedded()
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	m, err := db.NewMigrator(src, tc.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()
	if err := db.Up(m); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (tc *TestContext) startInline() error {
	cfg := &config.Config{
		Mode:            config.ModeTest,
		BindAddress:     "127.0.0.1",
		JWTSecret:       jwtSecret,
		DatabaseURL:     tc.DatabaseURL,
		TokenTTLSeconds: 3600,
		BcryptCost:      4,
	}
	issuer, err := token.NewIssuer([]byte(jwtSecret), token.WithTTL(cfg.TokenTTL()))
	if err != nil {
		return fmt.Errorf("failed to create token issuer: %w", err)
	}

	s := server.NewServer(cfg, server.GormStores(tc.DB), issuer, credential.NewHasher(cfg.BcryptCost))
	endpoints.RegisterAll(s)

	tc.inline = httptest.NewServer(s.Handler())
	tc.ServerURL = tc.inline.URL
	return nil
}

func (tc *TestContext) startBinary(binary string) error {
	port, err := freePort()
	if err != nil {
		return err
	}

	cmd := exec.Command(binary, "server", "--no-migrate", "-b", "127.0.0.1", "-p", fmt.Sprint(port))
	cmd.Env = append(os.Environ(),
		"SHIPLOG_ENV="+config.ModeTest,
		"DATABASE_URL="+tc.DatabaseURL,
		"JWT_SECRET="+jwtSecret,
		"SHIPLOG_BCRYPT_COST=4",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", binary, err)
	}
	tc.serverProcess = cmd
	tc.ServerURL = fmt.Sprintf("http://127.0.0.1:%d", port)

	return tc.waitForServer(30, 500*time.Millisecond)
}

func (tc *TestContext) waitForServer(retries int, interval time.Duration) error {
	for i := 0; i < retries; i++ {
		resp, err := tc.HTTPClient.Get(tc.ServerURL + "/status")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(interval)
	}
	return fmt.Errorf("server at %s did not become ready", tc.ServerURL)
}

// Reset empties every table between scenarios.
func (tc *TestContext) Reset() error {
	return tc.DB.Exec("TRUNCATE update_points, updates, products, users CASCADE").Error
}

// Close stops the server and the container.
func (tc *TestContext) Close() {
	if tc.inline != nil {
		tc.inline.Close()
	}
	if tc.serverProcess != nil && tc.serverProcess.Process != nil {
		_ = tc.serverProcess.Process.Kill()
		_ = tc.serverProcess.Wait()
	}
	if tc.DB != nil {
		if sqlDB, err := tc.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(context.Background())
	}
}

func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, fmt.Errorf("failed to find a free port: %w", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
