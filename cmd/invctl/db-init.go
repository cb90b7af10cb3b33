package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/db"
)

// dbInitCmd represents the db init command
var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the inventory tables",
	Long: `Create the objects and relationships tables and their indexes.

Existing tables are left untouched, so this is safe to run repeatedly.

Example:
  invctl db init
  invctl db init --print`,
	Run: func(cmd *cobra.Command, args []string) {
		printOnly, _ := cmd.Flags().GetBool("print")

		if err := runDBInit(printOnly); err != nil {
			fmt.Fprintf(os.Stderr, "Schema creation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	dbCmd.AddCommand(dbInitCmd)
	dbInitCmd.Flags().Bool("print", false, "print the statements for the configured database instead of running them")
}

func runDBInit(printOnly bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	conn, driver, err := connect(cfg)
	if err != nil {
		return err
	}

	if printOnly {
		statements, err := db.Schema(driver)
		if err != nil {
			return err
		}
		for _, stmt := range statements {
			fmt.Printf("%s;\n\n", stmt)
		}
		return nil
	}

	if err := db.InitSchema(conn, driver); err != nil {
		return err
	}
	fmt.Printf("Schema ready (%s)\n", driver)
	return nil
}
