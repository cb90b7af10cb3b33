package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/db"
	gormstore "github.com/doodlesbykumbi/invmang-in-go/pkg/server/store/gorm"
)

// dbWaitCmd represents the db wait command
var dbWaitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the database to accept connections",
	Long: `Wait for the database named by DATABASE_URL to accept connections.

Example:
  invctl db wait
  invctl db wait --retries 30`,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")

		if err := waitForDatabase(db.URL(), retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Database did not become ready: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Database is ready")
	},
}

func init() {
	dbCmd.AddCommand(dbWaitCmd)
	dbWaitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForDatabase(dbURL string, retries int, interval time.Duration) error {
	if dbURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	ping := pingPostgres
	if !strings.HasPrefix(dbURL, "postgres://") && !strings.HasPrefix(dbURL, "postgresql://") {
		ping = pingGorm
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		if lastErr = ping(dbURL); lastErr == nil {
			return nil
		}
		fmt.Print(".")
		time.Sleep(interval)
	}
	fmt.Println()
	return fmt.Errorf("not ready after %d attempts: %w", retries, lastErr)
}

func pingPostgres(dbURL string) error {
	conn, err := sql.Open("postgres", dbURL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()
	return conn.Ping()
}

func pingGorm(dbURL string) error {
	conn, _, err := db.Connect(db.Config{URL: dbURL})
	if err != nil {
		return err
	}
	if sqlDB, err := conn.DB(); err == nil {
		defer func() { _ = sqlDB.Close() }()
	}
	return gormstore.NewHealthStore(conn).CheckConnectivity()
}
