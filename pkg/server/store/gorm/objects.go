package gorm

import (
	"errors"

	"github.com/doodlesbykumbi/invmang-in-go/pkg/model"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"

	"gorm.io/gorm"
)

const descendantsQuery = `
WITH RECURSIVE descendants(id) AS (
	SELECT child_id FROM relationships WHERE parent_id = ?
	UNION
	SELECT r.child_id FROM relationships r JOIN descendants d ON r.parent_id = d.id
)
SELECT o.id, o.serial, o.name FROM objects o
WHERE o.id IN (SELECT id FROM descendants) AND o.id <> ?
ORDER BY o.id`

// ListObjects returns every object ordered by id.
func (s *InventoryStore) ListObjects() ([]store.Object, error) {
	var objects []model.Object
	if err := s.db.Order("id").Find(&objects).Error; err != nil {
		return nil, err
	}
	return toStoreObjects(objects), nil
}

// FetchObject retrieves a single object by id.
func (s *InventoryStore) FetchObject(id int64) (*store.Object, error) {
	var object model.Object
	err := s.db.Where("id = ?", id).First(&object).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	out := toStoreObject(object)
	return &out, nil
}

// ObjectExists checks if an object with the given id exists.
func (s *InventoryStore) ObjectExists(id int64) (bool, error) {
	var count int64
	err := s.db.Model(&model.Object{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// CreateObject inserts an object and returns the id assigned by the database.
func (s *InventoryStore) CreateObject(serial, name string) (int64, error) {
	object := model.Object{Serial: serial, Name: name}
	if err := s.db.Create(&object).Error; err != nil {
		return 0, err
	}
	return object.ID, nil
}

// ListDescendants walks relationships downward from id.
// Cycles are tolerated; each object is reported once.
func (s *InventoryStore) ListDescendants(id int64) ([]store.Object, error) {
	var objects []model.Object
	if err := s.db.Raw(descendantsQuery, id, id).Scan(&objects).Error; err != nil {
		return nil, err
	}
	return toStoreObjects(objects), nil
}

func toStoreObject(o model.Object) store.Object {
	return store.Object{ID: o.ID, Serial: o.Serial, Name: o.Name}
}

func toStoreObjects(objects []model.Object) []store.Object {
	out := make([]store.Object, 0, len(objects))
	for _, o := range objects {
		out = append(out, toStoreObject(o))
	}
	return out
}
