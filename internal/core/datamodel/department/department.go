package department

import "github.com/google/uuid"

type Department struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:varchar(200);uniqueIndex;not null"`
	CompanyID uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
}

func (Department) TableName() string {
	return "departments"
}
