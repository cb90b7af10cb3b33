package store

// InventoryStore combines object and relationship storage with transactions
type InventoryStore interface {
	ObjectsStore
	RelationshipsStore

	// Transaction wraps operations in a database transaction.
	// The provided function receives a transactional InventoryStore.
	// If the function returns an error or panics, the transaction is rolled back;
	// otherwise it is committed.
	Transaction(fn func(InventoryStore) error) error
}
