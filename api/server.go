/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/snapshots/*   Snapshot generation and period discovery
  /api/reports/*     Reconciled report assembly
  /api/analytics/*   Section-level aggregations for dashboards
  /api/employees/*   Live employee records
  /api/scenarios/*   Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Snapshot routes
		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/generate", h.GenerateSnapshots)
			r.Get("/periods", h.ListPeriods)
		})

		// Report routes
		r.Route("/reports", func(r chi.Router) {
			r.Get("/workforce", h.GetWorkforceReport)
		})

		// Analytics routes
		r.Route("/analytics", func(r chi.Router) {
			r.Get("/payroll-table", h.GetPayrollTable)
			r.Get("/payroll-chart", h.GetPayrollChart)
			r.Get("/unit-totals", h.GetUnitTotals)
			r.Get("/status-distribution", h.GetStatusDistribution)
			r.Get("/monthly-matrix", h.GetMonthlyMatrix)
			r.Get("/trend", h.GetTrend)
			r.Get("/kpi", h.GetKPI)
			r.Get("/summary", h.GetExecutiveSummary)
		})

		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
