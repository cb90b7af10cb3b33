package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/db"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/endpoints"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the inventory API server",
	Long: `Run the inventory API server.

Requires DATABASE_URL (or the INVMANG_DB_* variables). Listen address and
timeouts come from invmang.yml and INVMANG_* variables; --port and
--bind-address override them.

Use --init-schema to create missing tables before serving.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServer(cmd); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", 0, "server listen port (overrides configuration)")
	serverCmd.Flags().StringP("bind-address", "b", "", "server bind address (overrides configuration)")
	serverCmd.Flags().Bool("init-schema", false, "create missing tables on start")
}

func runServer(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind-address") {
		cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	conn, driver, err := connect(cfg)
	if err != nil {
		return err
	}

	initSchema, _ := cmd.Flags().GetBool("init-schema")
	if initSchema {
		log.Println("Creating database schema...")
		if err := db.InitSchema(conn, driver); err != nil {
			return err
		}
	}

	s := server.NewServer(conn, cfg)
	endpoints.RegisterAll(s)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigChan:
		log.Printf("Received %s, shutting down...", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return <-errCh
}
