package cmd

import (
	"context"
	"fmt"
	"log"
	"slices"

	companyDatamodel "github.com/frahmantamala/organization-management/internal/core/datamodel/company"
	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/frahmantamala/organization-management/internal/store/gormstore"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample companies and departments for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			if err := clearSeedData(ctx, db.SQL); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing companies and departments")
		}

		seeded, err := seedData(ctx, gormstore.NewDBContext(db.Gorm), sampleCompanies)
		if err != nil {
			log.Fatalf("failed to seed data: %v", err)
		}
		fmt.Printf("Seeded %d companies\n", seeded)
	},
}

type seedCompany struct {
	Name        string
	Departments []string
}

var sampleCompanies = []seedCompany{
	{Name: "Acme Corporation", Departments: []string{"Acme Engineering", "Acme Finance", "Acme People"}},
	{Name: "Globex", Departments: []string{"Globex Research", "Globex Sales"}},
	{Name: "Initech", Departments: []string{"Initech Support"}},
}

// seedData inserts every company that does not exist yet together with its
// departments, all in one transaction. It returns how many companies it added.
func seedData(ctx context.Context, c store.Context, companies []seedCompany) (int, error) {
	return store.RunInTransaction(ctx, c, func(p store.Provider) (int, error) {
		added := 0
		for _, sc := range companies {
			existing, err := p.Companies().Query(ctx, store.CompanyFilter{Name: sc.Name})
			if err != nil {
				return 0, err
			}
			if containsName(existing, sc.Name) {
				continue
			}

			id, err := p.Companies().Add(ctx, store.NewCompany{Name: sc.Name})
			if err != nil {
				return 0, fmt.Errorf("company %q: %w", sc.Name, err)
			}
			for _, name := range sc.Departments {
				if _, err := p.Departments().Add(ctx, store.NewDepartment{Name: name, CompanyID: id}); err != nil {
					return 0, fmt.Errorf("department %q: %w", name, err)
				}
			}
			added++
		}
		return added, nil
	})
}

func containsName(rows []*companyDatamodel.Company, name string) bool {
	return slices.ContainsFunc(rows, func(c *companyDatamodel.Company) bool {
		return c.Name == name
	})
}

// clearSeedData removes every department and company row.
func clearSeedData(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"departments", "companies"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
