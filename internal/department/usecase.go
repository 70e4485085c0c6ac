package department

import (
	"context"
	"fmt"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/frahmantamala/organization-management/internal/usecase"
	"github.com/frahmantamala/organization-management/pkg/logger"
	"github.com/google/uuid"
)

func companyNotFound(id uuid.UUID) *internal.AppError {
	return internal.NewNotFoundError(fmt.Sprintf("company %s not found", id), internal.ErrCodeCompanyNotFound)
}

type AddDepartmentCase struct {
	state *usecase.State
}

func NewAddDepartmentCase(state *usecase.State) usecase.SecureCase[AddDepartmentDTO, uuid.UUID] {
	return &AddDepartmentCase{state: state}
}

// Execute checks the company and inserts the department in one transaction.
func (c *AddDepartmentCase) Execute(ctx context.Context, dto AddDepartmentDTO, user internal.UserInfo) (usecase.Response[uuid.UUID], error) {
	logger.From(ctx).Debug("add department", "name", dto.Name, "company_id", dto.CompanyID, "user_id", user.ID)

	id, err := store.RunInTransaction(ctx, c.state.Store, func(p store.Provider) (uuid.UUID, error) {
		exists, err := p.Companies().Exists(ctx, dto.CompanyID)
		if err != nil {
			return uuid.Nil, err
		}
		if !exists {
			return uuid.Nil, companyNotFound(dto.CompanyID)
		}

		return p.Departments().Add(ctx, store.NewDepartment{Name: dto.Name, CompanyID: dto.CompanyID})
	})
	if err != nil {
		switch {
		case store.IsDuplicate(err):
			return usecase.Response[uuid.UUID]{}, internal.NewConflictError(fmt.Sprintf("department %q already exists", dto.Name)).WithCause(err)
		case store.IsNotFound(err):
			// the company vanished between the check and the insert
			return usecase.Response[uuid.UUID]{}, companyNotFound(dto.CompanyID).WithCause(err)
		}
		return usecase.Response[uuid.UUID]{}, err
	}
	return usecase.Created(id), nil
}

type QueryDepartmentsCase struct {
	state *usecase.State
}

func NewQueryDepartmentsCase(state *usecase.State) usecase.SecureCase[CompanyDepartmentsDTO, []Department] {
	return &QueryDepartmentsCase{state: state}
}

func (c *QueryDepartmentsCase) Execute(ctx context.Context, dto CompanyDepartmentsDTO, user internal.UserInfo) (usecase.Response[[]Department], error) {
	logger.From(ctx).Debug("query departments", "company_id", dto.CompanyID, "user_id", user.ID)

	provider := c.state.Store.Provider()
	exists, err := provider.Companies().Exists(ctx, dto.CompanyID)
	if err != nil {
		return usecase.Response[[]Department]{}, err
	}
	if !exists {
		return usecase.Response[[]Department]{}, companyNotFound(dto.CompanyID)
	}

	rows, err := provider.Departments().FindByCompany(ctx, dto.CompanyID)
	if err != nil {
		return usecase.Response[[]Department]{}, err
	}

	departments := make([]Department, 0, len(rows))
	for _, row := range rows {
		departments = append(departments, FromDataModel(row))
	}
	return usecase.Ok(departments), nil
}
