package gormstore

import (
	"context"

	departmentDatamodel "github.com/frahmantamala/organization-management/internal/core/datamodel/department"
	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository struct {
	db *gorm.DB
}

func NewDepartmentRepository(db *gorm.DB) store.DepartmentRepository {
	return &DepartmentRepository{db: db}
}

func (r *DepartmentRepository) Add(ctx context.Context, data store.NewDepartment) (uuid.UUID, error) {
	row := &departmentDatamodel.Department{
		ID:        uuid.New(),
		Name:      data.Name,
		CompanyID: data.CompanyID,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return uuid.Nil, MapError(err)
	}
	return row.ID, nil
}

func (r *DepartmentRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]*departmentDatamodel.Department, error) {
	var departments []*departmentDatamodel.Department
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name ASC").
		Order("id ASC").
		Find(&departments).Error
	if err != nil {
		return nil, MapError(err)
	}
	return departments, nil
}
