package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"srdash/internal/services"
)

// HealthHandler serves liveness and readiness information.
type HealthHandler struct {
	dashboard *services.DashboardService
	reports   *services.ReportService
	started   time.Time
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(dashboard *services.DashboardService, reports *services.ReportService) *HealthHandler {
	return &HealthHandler{
		dashboard: dashboard,
		reports:   reports,
		started:   time.Now(),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Health)
	return r
}

// Health reports service status, session state and email readiness.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status":           "healthy",
		"uptime_seconds":   int(time.Since(h.started).Seconds()),
		"session_loaded":   h.dashboard.HasData(),
		"email_configured": h.reports.EmailConfigured(),
	})
}
