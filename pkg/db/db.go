package db

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Driver identifies the SQL dialect behind a connection
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
)

// Config holds database connection configuration
type Config struct {
	// URL is the database connection URL (defaults to URL())
	URL string
	// LogLevel enables SQL logging when set to "debug" (defaults to INVMANG_LOG_LEVEL)
	LogLevel string
}

// Connect establishes a database connection.
// If no URL is provided, it falls back to URL().
func Connect(cfg Config) (*gorm.DB, Driver, error) {
	dbURL := cfg.URL
	if dbURL == "" {
		dbURL = URL()
	}
	if dbURL == "" {
		return nil, "", fmt.Errorf("DATABASE_URL environment variable is required")
	}

	dialector, driver, err := dialectorFor(dbURL)
	if err != nil {
		return nil, "", err
	}

	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = os.Getenv("INVMANG_LOG_LEVEL")
	}
	logMode := logger.Silent
	if logLevel == "debug" {
		logMode = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite allows a single writer; one connection also keeps :memory: databases alive
		sqlDB, err := db.DB()
		if err != nil {
			return nil, "", fmt.Errorf("failed to get raw db: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, driver, nil
}

func dialectorFor(dbURL string) (gorm.Dialector, Driver, error) {
	switch {
	case strings.HasPrefix(dbURL, "postgres://"), strings.HasPrefix(dbURL, "postgresql://"):
		return postgres.New(postgres.Config{
			DSN:                  dbURL,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), DriverPostgres, nil
	case strings.HasPrefix(dbURL, "sqlite://"):
		dsn := strings.TrimPrefix(dbURL, "sqlite://")
		if dsn == "" {
			return nil, "", fmt.Errorf("sqlite URL is missing a path")
		}
		return sqlite.Open(dsn), DriverSQLite, nil
	case strings.HasPrefix(dbURL, "file:"):
		return sqlite.Open(dbURL), DriverSQLite, nil
	}
	return nil, "", fmt.Errorf("unsupported database URL scheme: %q", schemeOf(dbURL))
}

func schemeOf(dbURL string) string {
	if i := strings.Index(dbURL, "://"); i > 0 {
		return dbURL[:i]
	}
	return dbURL
}

// URL returns the database URL from environment.
// DATABASE_URL wins; otherwise a PostgreSQL URL is built from the
// INVMANG_DB_* variables. Returns empty string if neither is set.
func URL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}

	host := os.Getenv("INVMANG_DB_HOST")
	if host == "" {
		return ""
	}
	port := os.Getenv("INVMANG_DB_PORT")
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + os.Getenv("INVMANG_DB_NAME"),
		RawQuery: "sslmode=disable",
	}
	if user := os.Getenv("INVMANG_DB_USER"); user != "" {
		if password, ok := os.LookupEnv("INVMANG_DB_PASSWORD"); ok {
			u.User = url.UserPassword(user, password)
		} else {
			u.User = url.User(user)
		}
	}
	return u.String()
}
