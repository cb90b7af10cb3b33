package integration

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/exec"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/config"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/db"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/endpoints"
)

const serverPort = 18080

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB            *gorm.DB
	Container     testcontainers.Container
	ServerURL     string
	DatabaseURL   string
	HTTPClient    *http.Client
	Cancel        context.CancelFunc
	ServerProcess *exec.Cmd
	InlineServer  *server.Server
}

// NewTestContext creates a new test context with a PostgreSQL testcontainer.
// Modes:
//   - Binary mode (default): Set INVMANG_BINARY to the path of the invctl binary
//   - Inline mode: Set INVMANG_INLINE=1 to run the server in-process
func NewTestContext(ctx context.Context) (*TestContext, error) {
	inlineMode := os.Getenv("INVMANG_INLINE") == "1"
	binaryPath := os.Getenv("INVMANG_BINARY")

	if !inlineMode && binaryPath == "" {
		return nil, fmt.Errorf("Either INVMANG_BINARY or INVMANG_INLINE=1 is required.\n\nBinary mode:\n  go build -o invctl ./cmd/invctl\n  INTEGRATION_TEST=1 INVMANG_BINARY=$(pwd)/invctl go test -v ./test/integration/...\n\nInline mode:\n  INTEGRATION_TEST=1 INVMANG_INLINE=1 go test -v ./test/integration/...")
	}
	if !inlineMode {
		if _, err := os.Stat(binaryPath); err != nil {
			return nil, fmt.Errorf("INVMANG_BINARY path does not exist: %s", binaryPath)
		}
		log.Printf("Using binary: %s", binaryPath)
	} else {
		log.Println("Using inline server mode")
	}

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("invmang_test"),
		tcpostgres.WithUsername("invmang"),
		tcpostgres.WithPassword("invmang"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	conn, driver, err := db.Connect(db.Config{URL: connStr})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	if err := db.InitSchema(conn, driver); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", serverPort)

	var serverProcess *exec.Cmd
	var inlineServer *server.Server
	var cancel context.CancelFunc

	if inlineMode {
		inlineServer, cancel = startInlineServer(conn)
	} else {
		serverProcess, cancel, err = startBinary(binaryPath, connStr)
		if err != nil {
			_ = pgContainer.Terminate(ctx)
			return nil, fmt.Errorf("failed to start server binary: %w", err)
		}
	}

	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		cancel()
		if serverProcess != nil && serverProcess.Process != nil {
			_ = serverProcess.Process.Kill()
		}
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:            conn,
		Container:     pgContainer,
		ServerURL:     serverURL,
		DatabaseURL:   connStr,
		HTTPClient:    &http.Client{Timeout: 10 * time.Second},
		Cancel:        cancel,
		ServerProcess: serverProcess,
		InlineServer:  inlineServer,
	}, nil
}

// startInlineServer starts the server in-process
func startInlineServer(conn *gorm.DB) (*server.Server, context.CancelFunc) {
	cfg := config.Default()
	cfg.BindAddress = "127.0.0.1"
	cfg.Port = serverPort

	s := server.NewServer(conn, cfg)
	endpoints.RegisterAll(s)

	go func() {
		if err := s.Start(); err != nil {
			log.Printf("inline server stopped: %v", err)
		}
	}()

	return s, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	}
}

// startBinary starts the invctl server binary
func startBinary(binaryPath, dbURL string) (*exec.Cmd, context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	cmd := exec.CommandContext(ctx, binaryPath, "server", "-b", "127.0.0.1", "-p", fmt.Sprint(serverPort))
	cmd.Env = append(os.Environ(),
		"DATABASE_URL="+dbURL,
		"INVMANG_AUDIT_ENABLED=false",
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		cancel()
		return nil, nil, fmt.Errorf("failed to start binary: %w", err)
	}
	return cmd, cancel, nil
}

// waitForServer polls the health endpoint until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/health")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Reset empties the inventory tables and restarts id sequences
func (tc *TestContext) Reset() error {
	return tc.DB.Exec("TRUNCATE relationships, objects RESTART IDENTITY").Error
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.Cancel != nil {
		tc.Cancel()
	}
	if tc.ServerProcess != nil && tc.ServerProcess.Process != nil {
		_ = tc.ServerProcess.Process.Kill()
		_ = tc.ServerProcess.Wait()
	}
	if sqlDB, err := tc.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}
