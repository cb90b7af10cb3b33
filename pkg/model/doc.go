// Package model defines the database models for the inventory service.
//
// This package contains GORM models that map to the inventory schema.
// The schema is shared by the PostgreSQL and SQLite dialects.
//
// # Core Models
//
//   - Object: a tracked item identified by serial number and name
//   - Relationship: a directed parent-child link between two objects
//
// # Database Schema
//
//   - objects: id (auto-increment), serial, name
//   - relationships: parent_id, child_id
//
// Referential integrity of relationships is checked by the write path,
// not by a foreign key.
package model
