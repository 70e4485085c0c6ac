package gormstore_test

import (
	"context"
	"strings"

	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/frahmantamala/organization-management/internal/store/gormstore"
	"github.com/frahmantamala/organization-management/internal/store/storetest"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CompanyRepository", func() {
	var (
		ctx  context.Context
		db   *gormstore.Database
		repo store.CompanyRepository
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = storetest.Open()
		Expect(err).NotTo(HaveOccurred())
		repo = gormstore.NewCompanyRepository(db.Gorm)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	Describe("Add", func() {
		It("generates an id and stores the row", func() {
			id, err := repo.Add(ctx, store.NewCompany{Name: "acme"})
			Expect(err).NotTo(HaveOccurred())
			Expect(id).NotTo(Equal(uuid.Nil))

			exists, err := repo.Exists(ctx, id)
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("reports a duplicate name as ErrDuplicate", func() {
			_, err := repo.Add(ctx, store.NewCompany{Name: "acme"})
			Expect(err).NotTo(HaveOccurred())

			_, err = repo.Add(ctx, store.NewCompany{Name: "acme"})
			Expect(err).To(MatchError(store.ErrDuplicate))
		})

		It("accepts a name of exactly 200 characters", func() {
			_, err := repo.Add(ctx, store.NewCompany{Name: strings.Repeat("a", 200)})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Exists", func() {
		It("returns false for an unknown id", func() {
			exists, err := repo.Exists(ctx, uuid.New())
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("Query", func() {
		BeforeEach(func() {
			for _, name := range []string{"test-2", "test-1", "other_co"} {
				_, err := repo.Add(ctx, store.NewCompany{Name: name})
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("returns every company ordered by name when the filter is empty", func() {
			companies, err := repo.Query(ctx, store.CompanyFilter{})
			Expect(err).NotTo(HaveOccurred())

			names := make([]string, len(companies))
			for i, c := range companies {
				names[i] = c.Name
			}
			Expect(names).To(Equal([]string{"other_co", "test-1", "test-2"}))
		})

		It("returns the same order on repeated calls", func() {
			first, err := repo.Query(ctx, store.CompanyFilter{})
			Expect(err).NotTo(HaveOccurred())
			second, err := repo.Query(ctx, store.CompanyFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})

		It("matches a substring of the name", func() {
			companies, err := repo.Query(ctx, store.CompanyFilter{Name: "test-1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(1))
			Expect(companies[0].Name).To(Equal("test-1"))

			companies, err = repo.Query(ctx, store.CompanyFilter{Name: "test"})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(2))
		})

		It("treats LIKE wildcards in the filter literally", func() {
			companies, err := repo.Query(ctx, store.CompanyFilter{Name: "_"})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(HaveLen(1))
			Expect(companies[0].Name).To(Equal("other_co"))

			companies, err = repo.Query(ctx, store.CompanyFilter{Name: "%"})
			Expect(err).NotTo(HaveOccurred())
			Expect(companies).To(BeEmpty())
		})
	})
})
