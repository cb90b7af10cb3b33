// Package gorm backs the inventory store interfaces with GORM.
//
// The same code runs against postgres and sqlite; dialect differences are
// confined to pkg/db. InventoryStore.Transaction hands callers a store bound
// to a single *gorm.DB transaction.
package gorm
