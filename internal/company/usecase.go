package company

import (
	"context"
	"fmt"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/frahmantamala/organization-management/internal/usecase"
	"github.com/frahmantamala/organization-management/pkg/logger"
	"github.com/google/uuid"
)

type AddCompanyCase struct {
	state *usecase.State
}

func NewAddCompanyCase(state *usecase.State) usecase.SecureCase[AddCompanyDTO, uuid.UUID] {
	return &AddCompanyCase{state: state}
}

// Execute inserts through the pool handle; a single insert needs no transaction.
func (c *AddCompanyCase) Execute(ctx context.Context, dto AddCompanyDTO, user internal.UserInfo) (usecase.Response[uuid.UUID], error) {
	logger.From(ctx).Debug("add company", "name", dto.Name, "user_id", user.ID)

	id, err := c.state.Store.Provider().Companies().Add(ctx, store.NewCompany{Name: dto.Name})
	if err != nil {
		if store.IsDuplicate(err) {
			return usecase.Response[uuid.UUID]{}, internal.NewConflictError(fmt.Sprintf("company %q already exists", dto.Name)).WithCause(err)
		}
		return usecase.Response[uuid.UUID]{}, err
	}
	return usecase.Created(id), nil
}

type QueryCompanyCase struct {
	state *usecase.State
}

func NewQueryCompanyCase(state *usecase.State) usecase.SecureCase[QueryCompanyDTO, []Company] {
	return &QueryCompanyCase{state: state}
}

func (c *QueryCompanyCase) Execute(ctx context.Context, dto QueryCompanyDTO, user internal.UserInfo) (usecase.Response[[]Company], error) {
	logger.From(ctx).Debug("query companies", "name", dto.Name, "user_id", user.ID)

	rows, err := c.state.Store.Provider().Companies().Query(ctx, store.CompanyFilter{Name: dto.Name})
	if err != nil {
		return usecase.Response[[]Company]{}, err
	}
	return usecase.Ok(FromDataModels(rows)), nil
}
