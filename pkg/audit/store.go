package audit

import (
	"database/sql"
	"encoding/json"
	"os"
	"time"

	_ "github.com/lib/pq"
)

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS audit_messages (
	id BIGSERIAL PRIMARY KEY,
	facility INTEGER NOT NULL,
	severity INTEGER NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL,
	hostname TEXT,
	appname TEXT,
	procid TEXT,
	msgid TEXT,
	sdata JSONB,
	message TEXT NOT NULL
)`

// Store handles audit message persistence to database
type Store struct {
	db *sql.DB
}

// NewStore opens the audit database named by AUDIT_DATABASE_URL.
// Returns nil if AUDIT_DATABASE_URL is not set.
func NewStore() (*Store, error) {
	dbURL := os.Getenv("AUDIT_DATABASE_URL")
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewStoreWithDB creates a store with an existing database connection
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// EnsureSchema creates the audit_messages table if needed
func (s *Store) EnsureSchema() error {
	if s.db == nil {
		return nil
	}
	_, err := s.db.Exec(createMessagesTable)
	return err
}

// Save persists an audit event
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	hostname, _ := os.Hostname()
	sdata, err := json.Marshal(event.StructuredData())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO audit_messages (facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		event.Facility(),
		int(event.Severity()),
		time.Now().UTC(),
		hostname,
		AppName,
		os.Getpid(),
		event.MessageID(),
		sdata,
		event.Message(),
	)
	return err
}
