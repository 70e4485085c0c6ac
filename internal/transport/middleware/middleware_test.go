package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/internal/transport/middleware"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var _ = Describe("RequestID", func() {
	It("generates a trace id when the caller sends none", func() {
		rec := httptest.NewRecorder()
		middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		Expect(rec.Header().Get(transport.TraceIDHeader)).To(HaveLen(36))
	})

	It("echoes the caller's trace id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(transport.TraceIDHeader, "trace-123")
		rec := httptest.NewRecorder()
		middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)
		Expect(rec.Header().Get(transport.TraceIDHeader)).To(Equal("trace-123"))
	})

	It("replaces an oversized trace id", func() {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(transport.TraceIDHeader, strings.Repeat("x", 500))
		rec := httptest.NewRecorder()
		middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).ServeHTTP(rec, req)
		Expect(rec.Header().Get(transport.TraceIDHeader)).To(HaveLen(36))
	})
})

var _ = Describe("RecoveryMiddleware", func() {
	It("turns a panic into an UNKNOWN_INTERNAL_ERROR body without leaking the panic value", func() {
		h := middleware.RecoveryMiddleware(quietLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("secret detail")
		}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		var body internal.ErrorResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		Expect(body.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(body.Data.Code).To(Equal(internal.ErrCodeUnknownInternal))
		Expect(rec.Body.String()).NotTo(ContainSubstring("secret detail"))
	})
})

var _ = Describe("LoggingMiddleware", func() {
	It("filters the authorization header and never logs success bodies", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		h := middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`"signed.jwt.value"`))
		}))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/signin", nil)
		req.Header.Set("Authorization", "Bearer abc.def.ghi")
		h.ServeHTTP(httptest.NewRecorder(), req)

		Expect(buf.String()).To(ContainSubstring("[FILTERED]"))
		Expect(buf.String()).NotTo(ContainSubstring("abc.def.ghi"))
		Expect(buf.String()).NotTo(ContainSubstring("signed.jwt.value"))
	})

	It("passes the request body through to the next handler", func() {
		var seen string
		h := middleware.LoggingMiddleware(quietLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			seen = string(b)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"acme"}`)))
		Expect(seen).To(Equal(`{"name":"acme"}`))
	})
})

var _ = Describe("LoggingMiddleware bodies and correlation", func() {
	It("streams a large body through while logging only a bounded prefix", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))
		payload := `{"name":"` + strings.Repeat("x", 2<<20) + `"}`

		var (
			seen   int
			limErr error
		)
		h := middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
			seen, limErr = len(b), err
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)))

		var maxErr *http.MaxBytesError
		Expect(errors.As(limErr, &maxErr)).To(BeTrue())
		Expect(seen).To(Equal(1 << 20))
		Expect(buf.String()).To(ContainSubstring("[TRUNCATED]"))
		Expect(buf.Len()).To(BeNumerically("<", 64<<10))
	})

	It("hands the handler the complete body when it is over the log limit", func() {
		payload := strings.Repeat("y", 10<<10)
		var seen string
		h := middleware.LoggingMiddleware(quietLogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			seen = string(b)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload)))
		Expect(seen).To(Equal(payload))
	})

	It("correlates request and response logs by trace id only", func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewJSONHandler(&buf, nil))

		h := middleware.RequestID(middleware.LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(transport.TraceIDHeader, "trace-abc")
		h.ServeHTTP(httptest.NewRecorder(), req)

		Expect(strings.Count(buf.String(), `"trace_id":"trace-abc"`)).To(Equal(2))
		Expect(buf.String()).NotTo(ContainSubstring("request_id"))
	})
})

var _ = Describe("Metrics", func() {
	It("counts requests by route pattern and status", func() {
		m := middleware.NewMetrics()
		router := chi.NewRouter()
		router.Use(m.Middleware)
		router.Get("/companies/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		for _, id := range []string{"a", "b"} {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/companies/"+id, nil))
		}

		expected := `
# HELP http_requests_total Total number of HTTP requests handled.
# TYPE http_requests_total counter
http_requests_total{method="GET",route="/companies/{id}",status="418"} 2
`
		Expect(testutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "http_requests_total")).To(Succeed())
	})

	It("serves the registry", func() {
		m := middleware.NewMetrics()
		rec := httptest.NewRecorder()
		m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("http_requests_in_flight"))
	})
})
