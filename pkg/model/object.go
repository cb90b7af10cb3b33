package model

// Object is a tracked inventory item
type Object struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Serial string `gorm:"column:serial"`
	Name   string `gorm:"column:name"`
}

func (Object) TableName() string {
	return "objects"
}
