package gormstore

import (
	"context"
	"strings"

	companyDatamodel "github.com/frahmantamala/organization-management/internal/core/datamodel/company"
	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) store.CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Query(ctx context.Context, filter store.CompanyFilter) ([]*companyDatamodel.Company, error) {
	q := r.db.WithContext(ctx).Model(&companyDatamodel.Company{})
	if filter.Name != "" {
		q = q.Where(`name LIKE ? ESCAPE '\'`, "%"+escapeLike(filter.Name)+"%")
	}

	var companies []*companyDatamodel.Company
	if err := q.Order("name ASC").Order("id ASC").Find(&companies).Error; err != nil {
		return nil, MapError(err)
	}
	return companies, nil
}

func (r *CompanyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&companyDatamodel.Company{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, MapError(err)
	}
	return count > 0, nil
}

func (r *CompanyRepository) Add(ctx context.Context, data store.NewCompany) (uuid.UUID, error) {
	row := &companyDatamodel.Company{
		ID:   uuid.New(),
		Name: data.Name,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return uuid.Nil, MapError(err)
	}
	return row.ID, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
