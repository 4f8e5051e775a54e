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
  /api/employees/*      Employee directory + balances + requests
  /api/requests/*       Approval queue and status transitions
  /api/quote            Price a candidate request without persisting
  /api/holidays/*       Custom holiday calendar
  /api/schedule         Company work schedule
  /api/templates/*      Notification email templates
  /api/admin/*          Seed/reset (dev only)

SECURITY NOTE:
  No authentication middleware. Identity is caller-supplied; an external
  gateway is expected to authenticate in production.

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
		// Employee routes
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Post("/", h.CreateEmployee)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}", h.UpdateEmployee)
			r.Delete("/{id}", h.DeleteEmployee)
			r.Get("/{id}/entitlement", h.GetEntitlement)
			r.Get("/{id}/balance", h.GetBalance)
			r.Get("/{id}/requests", h.ListEmployeeRequests)
			r.Post("/{id}/requests", h.SubmitRequest)
		})

		// Request approval routes
		r.Route("/requests", func(r chi.Router) {
			r.Get("/pending", h.ListPendingRequests)
			r.Get("/{id}", h.GetRequest)
			r.Post("/{id}/approve", h.ApproveRequest)
			r.Post("/{id}/reject", h.RejectRequest)
			r.Post("/{id}/cancel", h.CancelRequest)
		})

		// Quote route (no persistence)
		r.Post("/quote", h.QuoteRequest)

		// Holiday routes
		r.Route("/holidays", func(r chi.Router) {
			r.Get("/", h.ListHolidays)
			r.Post("/", h.CreateHoliday)
			r.Delete("/{id}", h.DeleteHoliday)
			r.Get("/year/{year}", h.ListYearHolidays)
		})

		// Schedule routes
		r.Route("/schedule", func(r chi.Router) {
			r.Get("/", h.GetSchedule)
			r.Put("/", h.SetSchedule)
		})

		// Template routes
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Get("/{id}", h.GetTemplate)
			r.Put("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)
			r.Post("/{id}/preview", h.PreviewTemplate)
		})

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Post("/seed", h.SeedDemoData)
		})
	})

	return r
}
