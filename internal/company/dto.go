package company

import (
	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/core/common/validation"
)

type AddCompanyDTO struct {
	Name string `json:"name" validate:"required,max=200"`
}

func (d AddCompanyDTO) Validate() []internal.ValidationError {
	return validation.NotBlank("name", d.Name)
}

type QueryCompanyDTO struct {
	Name string `query:"name" validate:"max=200"`
}
