package company

import (
	companyDatamodel "github.com/frahmantamala/organization-management/internal/core/datamodel/company"
	"github.com/google/uuid"
)

// Company is the public view of a company row.
type Company struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromDataModel(c *companyDatamodel.Company) Company {
	return Company{ID: c.ID, Name: c.Name}
}

func FromDataModels(rows []*companyDatamodel.Company) []Company {
	out := make([]Company, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromDataModel(row))
	}
	return out
}
