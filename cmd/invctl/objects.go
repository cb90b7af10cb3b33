package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// objectsCmd represents the objects command
var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "Manage inventory objects",
	Long:  `List, add and import inventory objects directly against the database.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'objects' requires a subcommand (list, add, import)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(objectsCmd)
}
