package store

// Relationship represents a parent-child link between two objects
type Relationship struct {
	ParentID int64 `json:"parent_id" msgpack:"parent_id"`
	ChildID  int64 `json:"child_id" msgpack:"child_id"`
}

// RelationshipsStore abstracts relationship storage operations
type RelationshipsStore interface {
	// ListRelationships returns every relationship ordered by parent then child.
	ListRelationships() ([]Relationship, error)

	// CreateRelationship links childID under parentID.
	// Existence of the parent is not checked here.
	CreateRelationship(parentID, childID int64) error

	// ParentIDs returns the parents of an object.
	ParentIDs(childID int64) ([]int64, error)

	// ChildIDs returns the direct children of an object.
	ChildIDs(parentID int64) ([]int64, error)
}
