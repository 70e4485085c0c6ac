package department

import (
	departmentDatamodel "github.com/frahmantamala/organization-management/internal/core/datamodel/department"
	"github.com/google/uuid"
)

type Department struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CompanyID uuid.UUID `json:"company_id"`
}

func FromDataModel(d *departmentDatamodel.Department) Department {
	return Department{ID: d.ID, Name: d.Name, CompanyID: d.CompanyID}
}
