package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// objectsListCmd represents the objects list command
var objectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List objects with their parents",
	Long: `List every object with the ids of its parents.

Example:
  invctl objects list
  invctl objects list --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := listObjects(os.Stdout, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list objects: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	objectsCmd.AddCommand(objectsListCmd)
	objectsListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func listObjects(w io.Writer, output string) error {
	s, _, err := openInventory()
	if err != nil {
		return err
	}

	objects, err := s.ListObjects()
	if err != nil {
		return err
	}
	rels, err := s.ListRelationships()
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"objects":       objects,
			"relationships": rels,
		})
	}
	return writeObjectTable(w, objects, rels)
}

func writeObjectTable(w io.Writer, objects []store.Object, rels []store.Relationship) error {
	parents := make(map[int64][]string)
	for _, rel := range rels {
		parents[rel.ChildID] = append(parents[rel.ChildID], strconv.FormatInt(rel.ParentID, 10))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSERIAL\tNAME\tPARENTS")
	for _, o := range objects {
		p := strings.Join(parents[o.ID], ",")
		if p == "" {
			p = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", o.ID, o.Serial, o.Name, p)
	}
	return tw.Flush()
}
