package gorm

import (
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"

	"gorm.io/gorm"
)

// Ensure InventoryStore implements store.InventoryStore
var _ store.InventoryStore = (*InventoryStore)(nil)

// InventoryStore implements store.InventoryStore using GORM
type InventoryStore struct {
	db *gorm.DB
}

// NewInventoryStore creates a new InventoryStore
func NewInventoryStore(db *gorm.DB) *InventoryStore {
	return &InventoryStore{db: db}
}

// Transaction runs fn inside a database transaction.
// A returned error or panic rolls the transaction back.
func (s *InventoryStore) Transaction(fn func(store.InventoryStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&InventoryStore{db: tx})
	})
}
