package department_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/department"
	"github.com/frahmantamala/organization-management/internal/store"
	"github.com/frahmantamala/organization-management/internal/store/gormstore"
	"github.com/frahmantamala/organization-management/internal/store/storetest"
	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/internal/usecase"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		db        *gormstore.Database
		router    *chi.Mux
		companyID uuid.UUID
	)

	BeforeEach(func() {
		var err error
		db, err = storetest.Open()
		Expect(err).NotTo(HaveOccurred())

		state := &usecase.State{Store: gormstore.NewDBContext(db.Gorm)}
		companyID, err = state.Store.Provider().Companies().Add(context.Background(), store.NewCompany{Name: "acme"})
		Expect(err).NotTo(HaveOccurred())

		base := transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
		handler := department.NewHandler(base, state)

		router = chi.NewRouter()
		router.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := internal.ContextWithUser(r.Context(), internal.UserInfo{ID: "aaa"})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		})
		router.Post("/departments", handler.AddDepartment)
		router.Get("/companies/{id}/departments", handler.CompanyDepartments)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	do := func(method, path, body string) (*httptest.ResponseRecorder, internal.ErrorResponse) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		var resp internal.ErrorResponse
		if rec.Code >= 400 {
			Expect(json.Unmarshal(rec.Body.Bytes(), &resp)).To(Succeed())
		}
		return rec, resp
	}

	It("creates a department and lists it under the company", func() {
		rec, _ := do(http.MethodPost, "/departments", `{"name":"finance","company_id":"`+companyID.String()+`"}`)
		Expect(rec.Code).To(Equal(http.StatusCreated))

		rec, _ = do(http.MethodGet, "/companies/"+companyID.String()+"/departments", "")
		Expect(rec.Code).To(Equal(http.StatusOK))

		var list []department.Department
		Expect(json.Unmarshal(rec.Body.Bytes(), &list)).To(Succeed())
		Expect(list).To(HaveLen(1))
		Expect(list[0].CompanyID).To(Equal(companyID))
	})

	It("answers 404 for an unknown company", func() {
		rec, resp := do(http.MethodPost, "/departments", `{"name":"finance","company_id":"`+uuid.NewString()+`"}`)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(resp.Data.Code).To(Equal(internal.ErrCodeCompanyNotFound))
	})

	It("reports every violation at once", func() {
		rec, resp := do(http.MethodPost, "/departments", `{"name":""}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(resp.Data.Code).To(Equal(internal.ErrCodeInputValidateFail))

		fields := []string{}
		for _, e := range resp.Data.Errors {
			fields = append(fields, e.Field)
		}
		Expect(fields).To(ConsistOf("name", "company_id"))
	})

	It("treats a malformed company_id as a parse failure", func() {
		rec, resp := do(http.MethodPost, "/departments", `{"name":"finance","company_id":"not-a-uuid"}`)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(resp.Data.Code).To(Equal(internal.ErrCodeInputParseFail))
	})

	It("treats a malformed path id as a parse failure", func() {
		rec, resp := do(http.MethodGet, "/companies/not-a-uuid/departments", "")
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(resp.Data.Code).To(Equal(internal.ErrCodeInputParseFail))
	})

	It("requires a JSON content type", func() {
		req := httptest.NewRequest(http.MethodPost, "/departments", strings.NewReader(`{"name":"finance"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
	})
})
