package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type bodyInput struct {
	Name      string    `json:"name" validate:"required,max=10"`
	CompanyID uuid.UUID `json:"company_id" validate:"required"`
}

type queryInput struct {
	Name  string `query:"name" validate:"max=3"`
	Limit int    `query:"limit"`
}

type pathInput struct {
	ID uuid.UUID `path:"id" validate:"required"`
}

func appErr(err error) *internal.AppError {
	GinkgoHelper()
	var out *internal.AppError
	Expect(err).To(BeAssignableToTypeOf(out))
	return err.(*internal.AppError)
}

var _ = Describe("Binders", func() {
	jsonRequest := func(contentType, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		return req
	}

	Describe("JSONBody", func() {
		It("decodes a valid body", func() {
			id := uuid.New()
			in, err := transport.JSONBody[bodyInput](jsonRequest("application/json; charset=utf-8", `{"name":"eng","company_id":"`+id.String()+`"}`))
			Expect(err).NotTo(HaveOccurred())
			Expect(in).To(Equal(bodyInput{Name: "eng", CompanyID: id}))
		})

		It("requires the JSON content type", func() {
			_, err := transport.JSONBody[bodyInput](jsonRequest("text/plain", `{}`))
			Expect(appErr(err).Code).To(Equal(internal.ErrCodeInputParseFail))
		})

		DescribeTable("reports malformed bodies as parse failures",
			func(body, message string) {
				_, err := transport.JSONBody[bodyInput](jsonRequest("application/json", body))
				e := appErr(err)
				Expect(e.Code).To(Equal(internal.ErrCodeInputParseFail))
				Expect(e.Message).To(ContainSubstring(message))
			},
			Entry("empty", ``, "empty"),
			Entry("syntax", `{"name":`, "malformed JSON"),
			Entry("wrong type", `{"name":12}`, "must be of type"),
			Entry("bad uuid", `{"name":"x","company_id":"not-a-uuid"}`, "invalid request body"),
			Entry("truncated object", `{"name":"x","company_id":`, "unexpected end of input"),
			Entry("second value", `{"name":"a"} {"name":"b"}`, "single JSON value"),
			Entry("trailing garbage", `{"name":"a"}garbage`, "single JSON value"),
		)

		It("accepts trailing whitespace after the value", func() {
			id := uuid.New()
			in, err := transport.JSONBody[bodyInput](jsonRequest("application/json", `{"name":"eng","company_id":"`+id.String()+`"}`+"\n  "))
			Expect(err).NotTo(HaveOccurred())
			Expect(in.Name).To(Equal("eng"))
		})

		It("rejects a valid value followed by another value", func() {
			_, err := transport.JSONBody[bodyInput](jsonRequest("application/json", `{"name":"a","company_id":"`+uuid.NewString()+`"} {}`))
			Expect(appErr(err).Code).To(Equal(internal.ErrCodeInputParseFail))
		})

		It("reports every violated constraint at once", func() {
			_, err := transport.JSONBody[bodyInput](jsonRequest("application/json", `{"name":"much-too-long-name"}`))
			e := appErr(err)
			Expect(e.Code).To(Equal(internal.ErrCodeInputValidateFail))
			Expect(e.Details).To(HaveLen(2))
			Expect(e.Details).To(ContainElement(HaveField("Field", "name")))
			Expect(e.Details).To(ContainElement(HaveField("Field", "company_id")))
		})
	})

	Describe("QueryParams", func() {
		It("decodes and converts query values", func() {
			in, err := transport.QueryParams[queryInput](httptest.NewRequest(http.MethodGet, "/?name=ac&limit=5", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(in).To(Equal(queryInput{Name: "ac", Limit: 5}))
		})

		It("treats missing values as zero", func() {
			in, err := transport.QueryParams[queryInput](httptest.NewRequest(http.MethodGet, "/", nil))
			Expect(err).NotTo(HaveOccurred())
			Expect(in).To(Equal(queryInput{}))
		})

		It("validates decoded values", func() {
			_, err := transport.QueryParams[queryInput](httptest.NewRequest(http.MethodGet, "/?name=acme", nil))
			Expect(appErr(err).Code).To(Equal(internal.ErrCodeInputValidateFail))
		})

		It("reports unconvertible values as parse failures", func() {
			_, err := transport.QueryParams[queryInput](httptest.NewRequest(http.MethodGet, "/?limit=ten", nil))
			Expect(appErr(err).Code).To(Equal(internal.ErrCodeInputParseFail))
		})
	})

	Describe("PathParams", func() {
		withParam := func(id string) *http.Request {
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", id)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
		}

		It("decodes route parameters", func() {
			id := uuid.New()
			in, err := transport.PathParams[pathInput](withParam(id.String()))
			Expect(err).NotTo(HaveOccurred())
			Expect(in.ID).To(Equal(id))
		})

		It("reports a malformed id as a parse failure", func() {
			_, err := transport.PathParams[pathInput](withParam("nope"))
			Expect(appErr(err).Code).To(Equal(internal.ErrCodeInputParseFail))
		})
	})
})
