// Package store provides storage abstractions for the inventory server.
//
// This package defines interfaces for database operations, allowing the
// server endpoints to be decoupled from the specific database implementation.
// This enables easier testing with mocks and support for both PostgreSQL
// and SQLite backends.
//
// # Available Stores
//
//   - ObjectsStore: object creation, lookup and listing
//   - RelationshipsStore: parent-child link creation and listing
//   - InventoryStore: both of the above plus scoped transactions
//   - HealthStore: database connectivity checks
//
// # Usage
//
//	err := inv.Transaction(func(tx store.InventoryStore) error {
//	    id, err := tx.CreateObject("S1", "Widget")
//	    if err != nil {
//	        return err
//	    }
//	    return tx.CreateRelationship(parentID, id)
//	})
package store
