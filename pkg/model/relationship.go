package model

// Relationship links a parent object to one of its children
type Relationship struct {
	ParentID int64 `gorm:"column:parent_id"`
	ChildID  int64 `gorm:"column:child_id"`
}

func (Relationship) TableName() string {
	return "relationships"
}
