package rest

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/organization-management/api"
	"github.com/frahmantamala/organization-management/internal"
	"github.com/frahmantamala/organization-management/internal/auth"
	"github.com/frahmantamala/organization-management/internal/company"
	"github.com/frahmantamala/organization-management/internal/department"
	"github.com/frahmantamala/organization-management/internal/transport"
	"github.com/frahmantamala/organization-management/internal/transport/middleware"
	"github.com/frahmantamala/organization-management/internal/transport/swagger"
	"github.com/go-chi/chi"
)

// RegisterAllRoutes mounts every route on router. metrics may be nil when
// metrics are disabled.
func RegisterAllRoutes(router *chi.Mux, base *transport.BaseHandler, db Pinger, authHandler *auth.Handler, rbac *auth.RBACAuthorization, companyHandler *company.Handler, departmentHandler *department.Handler, metrics *middleware.Metrics, cfg internal.Config, logger *slog.Logger) {
	healthHandler := NewHealthHandler(base, db)

	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if metrics != nil {
		router.Use(metrics.Middleware)
		router.Method(http.MethodGet, cfg.Observability.Metrics.Path, metrics.Handler())
	}

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(api.Spec)
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/healthy", healthHandler.Liveness)
		r.Get("/health", healthHandler.Readiness)

		r.Route("/v1", func(v1 chi.Router) {
			v1.Get("/signin", authHandler.SignIn)

			v1.Group(func(pr chi.Router) {
				pr.Use(authHandler.AuthMiddleware)

				pr.With(rbac.RequireRoles(cfg.Security.AdminRoles...)).
					Get("/companies", companyHandler.QueryCompanies)
				pr.Post("/companies", companyHandler.AddCompany)
				pr.Get("/companies/{id}/departments", departmentHandler.CompanyDepartments)

				pr.Post("/departments", departmentHandler.AddDepartment)
			})
		})
	})
}
