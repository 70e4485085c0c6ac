package company

import (
	"net/http"

	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/internal/usecase"
)

type Handler struct {
	AddCompany     http.HandlerFunc
	QueryCompanies http.HandlerFunc
}

func NewHandler(base *transport.BaseHandler, state *usecase.State) *Handler {
	return &Handler{
		AddCompany:     transport.Secure(base, state, transport.JSONBody[AddCompanyDTO], NewAddCompanyCase),
		QueryCompanies: transport.Secure(base, state, transport.QueryParams[QueryCompanyDTO], NewQueryCompanyCase),
	}
}
