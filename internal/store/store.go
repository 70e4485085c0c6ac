// Package store declares the repository capabilities and the unit of work
// used by the use cases. Implementations bind the same repositories to either
// the connection pool or an open transaction.
package store

import (
	"context"

	companyDatamodel "github.com/frahmantamala/organization-management/internal/core/datamodel/company"
	departmentDatamodel "github.com/frahmantamala/organization-management/internal/core/datamodel/department"
	"github.com/google/uuid"
)

// CompanyFilter narrows CompanyRepository.Query. An empty Name matches all rows.
type CompanyFilter struct {
	Name string
}

type NewCompany struct {
	Name string
}

type NewDepartment struct {
	Name      string
	CompanyID uuid.UUID
}

type CompanyRepository interface {
	// Query returns companies whose name contains filter.Name, ordered by name then id.
	Query(ctx context.Context, filter CompanyFilter) ([]*companyDatamodel.Company, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	// Add generates an id, inserts the row and returns the id.
	Add(ctx context.Context, data NewCompany) (uuid.UUID, error)
}

type DepartmentRepository interface {
	// Add inserts a department. Callers check that the company exists first.
	Add(ctx context.Context, data NewDepartment) (uuid.UUID, error)
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*departmentDatamodel.Department, error)
}

// Provider hands out repositories bound to one handle, either the pool or a
// transaction.
type Provider interface {
	Companies() CompanyRepository
	Departments() DepartmentRepository
}

// Context is the data access entry point shared by every request.
type Context interface {
	// Provider returns repositories bound to the connection pool.
	Provider() Provider
	// Transaction runs fn against repositories bound to a new transaction.
	// It commits when fn returns nil and rolls back otherwise, returning
	// fn's error unchanged. A panic in fn rolls back and is re-raised.
	Transaction(ctx context.Context, fn func(Provider) error) error
	Ping(ctx context.Context) error
}

// RunInTransaction is the value returning form of Context.Transaction.
func RunInTransaction[T any](ctx context.Context, c Context, fn func(Provider) (T, error)) (T, error) {
	var result T
	err := c.Transaction(ctx, func(p Provider) error {
		var err error
		result, err = fn(p)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
