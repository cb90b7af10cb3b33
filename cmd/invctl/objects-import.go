package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/audit"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/inventory"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/snapshot"
)

// objectsImportCmd represents the objects import command
var objectsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import objects from a YAML file or a snapshot",
	Long: `Import objects one at a time through the add-object path.

The file is either a snapshot written by "invctl export" or a YAML list:

  - ref: 1
    serial: SN-1
    name: Rack
  - serial: SN-2
    name: Server
    parent_ref: 1      # a ref earlier in this file
  - serial: SN-3
    name: Disk
    parent_id: 42      # an object already in the database

Import stops at the first rejected record; earlier records stay added.
With --watch the file is treated as append-only: after each change only the
records past those already imported are added, so a rejected record can be
fixed in place and is retried on the next save.

Example:
  invctl objects import objects.yml
  invctl objects import backup.snap
  invctl objects import --watch /run/invmang/import.yml`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filename := args[0]
		watch, _ := cmd.Flags().GetBool("watch")

		_, svc, err := openInventory()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to import objects: %v\n", err)
			os.Exit(1)
		}

		if watch {
			err = watchImport(svc.NewImporter(), filename)
		} else {
			err = importFile(svc.NewImporter(), filename)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to import objects: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	objectsCmd.AddCommand(objectsImportCmd)
	objectsImportCmd.Flags().Bool("watch", false, "import records appended to the file as it changes")
}

// loadRecords reads import records from a snapshot or YAML file
func loadRecords(filename string) ([]inventory.Record, error) {
	if snapshot.IsSnapshotFile(filename) {
		snap, err := snapshot.ReadFile(filename)
		if err != nil {
			return nil, err
		}
		records, skipped := snap.Records()
		if skipped > 0 {
			fmt.Fprintf(os.Stderr, "Skipping %d additional parent links not expressible per object\n", skipped)
		}
		return records, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var records []inventory.Record
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return records, nil
}

// watchDebounce coalesces the bursts of write events editors emit per save
const watchDebounce = 250 * time.Millisecond

func importFile(im *inventory.Importer, filename string) error {
	records, err := loadRecords(filename)
	if err != nil {
		return err
	}
	if len(records) <= im.Applied() {
		fmt.Printf("No new records in %s (%s already imported)\n", filename, humanize.Comma(int64(im.Applied())))
		return nil
	}

	start := time.Now()
	pending := len(records) - im.Applied()
	n, err := im.Apply(records, func(r inventory.ImportResult) {
		audit.Log(audit.ObjectEvent{
			Action:   audit.ActionImport,
			ObjectID: r.Result.ID,
			Serial:   r.Record.Serial,
			Name:     r.Record.Name,
			Success:  true,
		})
		if r.Result.ParentID != nil {
			audit.Log(audit.RelationshipEvent{ParentID: *r.Result.ParentID, ChildID: r.Result.ID})
		}
	})

	event := audit.SnapshotEvent{Action: audit.ActionImport, Path: filename, Objects: n, Success: err == nil}
	if err != nil {
		event.ErrorMessage = err.Error()
	}
	audit.Log(event)

	fmt.Printf("Imported %s of %s objects from %s in %s\n",
		humanize.Comma(int64(n)), humanize.Comma(int64(pending)), filename, time.Since(start).Round(time.Millisecond))
	return err
}

func watchImport(im *inventory.Importer, filename string) error {
	if err := importFile(im, filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	fmt.Printf("Watching %s for changes\n", filename)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	debounce := time.NewTimer(watchDebounce)
	if !debounce.Stop() {
		<-debounce.C
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				debounce.Reset(watchDebounce)
			}
		case <-debounce.C:
			fmt.Printf("[%s] File modified, importing new records...\n", time.Now().Format(time.RFC3339))
			if err := importFile(im, filename); err != nil {
				fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}
