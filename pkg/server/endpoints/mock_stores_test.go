package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// MockInventoryStore implements store.InventoryStore for testing using testify/mock
type MockInventoryStore struct {
	mock.Mock
}

func NewMockInventoryStore() *MockInventoryStore {
	return &MockInventoryStore{}
}

func (m *MockInventoryStore) Transaction(fn func(store.InventoryStore) error) error {
	m.Called()
	return fn(m)
}

func (m *MockInventoryStore) ListObjects() ([]store.Object, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Object), args.Error(1)
}

func (m *MockInventoryStore) FetchObject(id int64) (*store.Object, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Object), args.Error(1)
}

func (m *MockInventoryStore) ObjectExists(id int64) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockInventoryStore) CreateObject(serial, name string) (int64, error) {
	args := m.Called(serial, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryStore) ListDescendants(id int64) ([]store.Object, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Object), args.Error(1)
}

func (m *MockInventoryStore) ListRelationships() ([]store.Relationship, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Relationship), args.Error(1)
}

func (m *MockInventoryStore) CreateRelationship(parentID, childID int64) error {
	args := m.Called(parentID, childID)
	return args.Error(0)
}

func (m *MockInventoryStore) ParentIDs(childID int64) ([]int64, error) {
	args := m.Called(childID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockInventoryStore) ChildIDs(parentID int64) ([]int64, error) {
	args := m.Called(parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func NewMockHealthStore() *MockHealthStore {
	return &MockHealthStore{}
}

func (m *MockHealthStore) CheckConnectivity() error {
	args := m.Called()
	return args.Error(0)
}
