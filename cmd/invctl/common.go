package main

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/audit"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/config"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/db"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/inventory"
	gormstore "github.com/doodlesbykumbi/invmang-in-go/pkg/server/store/gorm"
)

// loadConfig loads and validates configuration and applies the audit setting
func loadConfig() (*config.InventoryConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	audit.SetEnabled(cfg.IsAuditEnabled())
	return cfg, nil
}

func connect(cfg *config.InventoryConfig) (*gorm.DB, db.Driver, error) {
	return db.Connect(db.Config{LogLevel: cfg.LogLevel})
}

// openInventory connects to the database and returns a store and service over it
func openInventory() (*gormstore.InventoryStore, *inventory.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	conn, _, err := connect(cfg)
	if err != nil {
		return nil, nil, err
	}
	s := gormstore.NewInventoryStore(conn)
	return s, inventory.NewService(s), nil
}
