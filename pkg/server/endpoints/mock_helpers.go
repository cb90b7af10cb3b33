package endpoints

import (
	"database/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/config"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server"
)

// NewMockTestServer creates a server with all endpoints registered on a
// mocked postgres database for unit testing
func NewMockTestServer() (*server.Server, *MockDB, error) {
	m, err := NewMockDB()
	if err != nil {
		return nil, nil, err
	}

	s := server.NewServer(m.GormDB, config.Default())
	RegisterAll(s)
	return s, m, nil
}

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// NewMockDB creates a new mock database connection
func NewMockDB() (*MockDB, error) {
	db, mock, err := sqlmock.New()
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{
			Conn:                 db,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &MockDB{
		DB:     db,
		Mock:   mock,
		GormDB: gormDB,
	}, nil
}

// Close closes the mock database
func (m *MockDB) Close() error {
	return m.DB.Close()
}

// ExpectObjectInsert sets up expectation for an object insert returning id
func (m *MockDB) ExpectObjectInsert(serial, name string, id int64) {
	m.Mock.ExpectQuery(`INSERT INTO "objects"`).
		WithArgs(serial, name).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id))
}

// ExpectObjectInsertError sets up expectation for a failing object insert
func (m *MockDB) ExpectObjectInsertError(err error) {
	m.Mock.ExpectQuery(`INSERT INTO "objects"`).WillReturnError(err)
}

// ExpectParentCount sets up expectation for the parent existence check
func (m *MockDB) ExpectParentCount(parentID int64, count int) {
	m.Mock.ExpectQuery(`SELECT count\(\*\) FROM "objects"`).
		WithArgs(parentID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(count))
}

// ExpectRelationshipInsert sets up expectation for a relationship insert
func (m *MockDB) ExpectRelationshipInsert(parentID, childID int64) {
	m.Mock.ExpectExec(`INSERT INTO "relationships"`).
		WithArgs(parentID, childID).
		WillReturnResult(sqlmock.NewResult(0, 1))
}

// ExpectRelationshipInsertError sets up expectation for a failing relationship insert
func (m *MockDB) ExpectRelationshipInsertError(err error) {
	m.Mock.ExpectExec(`INSERT INTO "relationships"`).WillReturnError(err)
}

// ExpectObjectsList sets up expectation for listing objects
func (m *MockDB) ExpectObjectsList(rows *sqlmock.Rows) {
	m.Mock.ExpectQuery(`SELECT \* FROM "objects" ORDER BY id`).WillReturnRows(rows)
}

// ExpectRelationshipsList sets up expectation for listing relationships
func (m *MockDB) ExpectRelationshipsList(rows *sqlmock.Rows) {
	m.Mock.ExpectQuery(`SELECT \* FROM "relationships" ORDER BY parent_id,child_id`).WillReturnRows(rows)
}

// ObjectRows builds result rows for the objects table
func ObjectRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "serial", "name"})
}

// RelationshipRows builds result rows for the relationships table
func RelationshipRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"parent_id", "child_id"})
}
