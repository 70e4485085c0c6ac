package department

import (
	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/core/common/validation"
	"github.com/google/uuid"
)

type AddDepartmentDTO struct {
	Name      string    `json:"name" validate:"required,max=200"`
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
}

func (d AddDepartmentDTO) Validate() []internal.ValidationError {
	return validation.NotBlank("name", d.Name)
}

type CompanyDepartmentsDTO struct {
	CompanyID uuid.UUID `path:"id" validate:"required"`
}
