package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/audit"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/inventory"
)

// objectsAddCmd represents the objects add command
var objectsAddCmd = &cobra.Command{
	Use:   "add <serial> <name>",
	Short: "Add an object",
	Long: `Add an object, optionally under an existing parent.

Goes through the same validation and transaction as POST /api/add_object.

Example:
  invctl objects add SN-1 Rack
  invctl objects add SN-2 Server --parent 1`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		req := &inventory.Request{Serial: args[0], Name: args[1]}
		if cmd.Flags().Changed("parent") {
			parent, _ := cmd.Flags().GetInt64("parent")
			req.Parent = []byte(strconv.FormatInt(parent, 10))
		}

		id, err := addObject(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to add object: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Object added successfully. id=%d\n", id)
	},
}

func init() {
	objectsCmd.AddCommand(objectsAddCmd)
	objectsAddCmd.Flags().Int64("parent", 0, "id of the parent object")
}

func addObject(req *inventory.Request) (int64, error) {
	_, svc, err := openInventory()
	if err != nil {
		return 0, err
	}

	result, err := svc.AddObject(req)
	if err != nil {
		return 0, err
	}

	audit.Log(audit.ObjectEvent{
		Action:   audit.ActionCreate,
		ObjectID: result.ID,
		Serial:   req.Serial,
		Name:     req.Name,
		Success:  true,
	})
	if result.ParentID != nil {
		audit.Log(audit.RelationshipEvent{ParentID: *result.ParentID, ChildID: result.ID})
	}
	return result.ID, nil
}
