package db

import (
	"embed"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Schema returns the DDL statements for the given driver.
func Schema(driver Driver) ([]string, error) {
	data, err := schemaFS.ReadFile("schema/" + string(driver) + ".sql")
	if err != nil {
		return nil, fmt.Errorf("no schema for driver %q: %w", driver, err)
	}

	var statements []string
	for _, stmt := range strings.Split(string(data), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements, nil
}

// InitSchema creates the objects and relationships tables if they do not exist.
// Every statement is idempotent so this is safe to run on each start.
func InitSchema(db *gorm.DB, driver Driver) error {
	statements, err := Schema(driver)
	if err != nil {
		return err
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
