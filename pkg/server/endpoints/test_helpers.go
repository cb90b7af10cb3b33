package endpoints

import (
	"github.com/doodlesbykumbi/invmang-in-go/pkg/config"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/db"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
)

// NewTestServer creates a server with all endpoints registered against a
// real database. The schema is created if missing.
// Use "sqlite://:memory:" for a throwaway database.
func NewTestServer(dbURL string) (*server.Server, error) {
	conn, driver, err := db.Connect(db.Config{URL: dbURL})
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(conn, driver); err != nil {
		return nil, err
	}

	s := server.NewServer(conn, config.Default())
	RegisterAll(s)
	return s, nil
}

// ResetTestData empties the inventory tables
func ResetTestData(s *server.Server) error {
	if err := s.DB.Exec("DELETE FROM relationships").Error; err != nil {
		return err
	}
	return s.DB.Exec("DELETE FROM objects").Error
}
