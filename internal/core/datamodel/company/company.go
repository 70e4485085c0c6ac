package company

import "github.com/google/uuid"

type Company struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name string    `gorm:"column:name;type:varchar(200);uniqueIndex;not null"`
}

func (Company) TableName() string {
	return "companies"
}
