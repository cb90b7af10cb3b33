package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/audit"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/snapshot"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all objects and relationships to a snapshot file",
	Long: `Export all objects and relationships to a compressed snapshot file.

The snapshot can be loaded into another database with "invctl objects import".

Example:
  invctl export
  invctl export --out-dir /backup --label nightly`,
	Run: func(cmd *cobra.Command, args []string) {
		outDir, _ := cmd.Flags().GetString("out-dir")
		label, _ := cmd.Flags().GetString("label")

		if label == "" {
			label = time.Now().Format("2006-01-02T15-04-05Z")
		}

		if err := runExport(outDir, label); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out-dir", "o", ".", "Output directory")
	exportCmd.Flags().StringP("label", "l", "", "Label for snapshot filename (default: timestamp)")
}

func runExport(outDir, label string) error {
	s, _, err := openInventory()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0770); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outDir, label+".snap")

	snap, err := snapshot.Capture(s)
	if err != nil {
		audit.Log(audit.SnapshotEvent{Action: audit.ActionExport, Path: path, ErrorMessage: err.Error()})
		return err
	}

	n, err := snapshot.WriteFile(path, snap)
	audit.Log(audit.SnapshotEvent{
		Action:        audit.ActionExport,
		Path:          path,
		Objects:       len(snap.Objects),
		Relationships: len(snap.Relationships),
		Success:       err == nil,
		ErrorMessage:  errorText(err),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Exported %s objects and %s relationships to %s (%s)\n",
		humanize.Comma(int64(len(snap.Objects))),
		humanize.Comma(int64(len(snap.Relationships))),
		path,
		humanize.Bytes(uint64(n)))
	return nil
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
