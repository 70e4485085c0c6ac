package department

import (
	"net/http"

	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/internal/usecase"
)

type Handler struct {
	AddDepartment      http.HandlerFunc
	CompanyDepartments http.HandlerFunc
}

func NewHandler(base *transport.BaseHandler, state *usecase.State) *Handler {
	return &Handler{
		AddDepartment:      transport.Secure(base, state, transport.JSONBody[AddDepartmentDTO], NewAddDepartmentCase),
		CompanyDepartments: transport.Secure(base, state, transport.PathParams[CompanyDepartmentsDTO], NewQueryDepartmentsCase),
	}
}
