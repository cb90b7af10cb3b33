package gorm

import (
	"github.com/doodlesbykumbi/invmang-in-go/pkg/model"
	"github.com/doodlesbykumbi/invmang-in-go/pkg/server/store"
)

// ListRelationships returns every relationship ordered by parent then child.
func (s *InventoryStore) ListRelationships() ([]store.Relationship, error) {
	var rels []model.Relationship
	if err := s.db.Order("parent_id").Order("child_id").Find(&rels).Error; err != nil {
		return nil, err
	}

	out := make([]store.Relationship, 0, len(rels))
	for _, r := range rels {
		out = append(out, store.Relationship{ParentID: r.ParentID, ChildID: r.ChildID})
	}
	return out, nil
}

// CreateRelationship links childID under parentID.
func (s *InventoryStore) CreateRelationship(parentID, childID int64) error {
	return s.db.Create(&model.Relationship{ParentID: parentID, ChildID: childID}).Error
}

// ParentIDs returns the parents of an object.
func (s *InventoryStore) ParentIDs(childID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.Model(&model.Relationship{}).
		Where("child_id = ?", childID).
		Order("parent_id").
		Pluck("parent_id", &ids).Error
	return ids, err
}

// ChildIDs returns the direct children of an object.
func (s *InventoryStore) ChildIDs(parentID int64) ([]int64, error) {
	ids := []int64{}
	err := s.db.Model(&model.Relationship{}).
		Where("parent_id = ?", parentID).
		Order("child_id").
		Pluck("child_id", &ids).Error
	return ids, err
}
