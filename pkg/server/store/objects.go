package store

import "errors"

// ErrObjectNotFound is returned when an object doesn't exist
var ErrObjectNotFound = errors.New("object not found")

// Object represents an inventory object
type Object struct {
	ID     int64  `json:"id" msgpack:"id"`
	Serial string `json:"serial" msgpack:"serial"`
	Name   string `json:"name" msgpack:"name"`
}

// ObjectsStore abstracts object storage operations
type ObjectsStore interface {
	// ListObjects returns every object ordered by id.
	ListObjects() ([]Object, error)

	// FetchObject retrieves a single object.
	// Returns ErrObjectNotFound if the object doesn't exist.
	FetchObject(id int64) (*Object, error)

	// ObjectExists checks if an object with the given id exists.
	ObjectExists(id int64) (bool, error)

	// CreateObject inserts an object and returns its assigned id.
	CreateObject(serial, name string) (int64, error)

	// ListDescendants returns every object reachable from id through
	// relationships, excluding id itself, ordered by id.
	ListDescendants(id int64) ([]Object, error)
}
