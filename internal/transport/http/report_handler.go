package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "srdash/internal/errors"
	"srdash/internal/services"
)

// ReportHandler serves report generation and delivery endpoints.
type ReportHandler struct {
	service  *services.ReportService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewReportHandler creates the report handler.
func NewReportHandler(service *services.ReportService, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.DownloadPDF)
	r.Post("/csv", h.DownloadCSV)
	r.Post("/email", h.Email)
	return r
}

// DownloadPDF generates the PDF report and streams it as an attachment.
func (h *ReportHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.service.GeneratePDF(r.Context())
	if err != nil {
		h.renderReportError(w, r, err)
		return
	}
	h.streamArtifact(w, artifact)
}

// DownloadCSV generates the per-merchant CSV export and streams it.
func (h *ReportHandler) DownloadCSV(w http.ResponseWriter, r *http.Request) {
	artifact, err := h.service.GenerateCSV(r.Context())
	if err != nil {
		h.renderReportError(w, r, err)
		return
	}
	h.streamArtifact(w, artifact)
}

// EmailRequest is the payload for POST /report/email. Empty lists fall back
// to the configured recipients.
type EmailRequest struct {
	Recipients []string `json:"recipients" validate:"omitempty,dive,email"`
	CC         []string `json:"cc" validate:"omitempty,dive,email"`
}

// Email generates the PDF report and sends it over SMTP.
func (h *ReportHandler) Email(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if r.ContentLength > 0 {
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			renderError(w, r, apierrors.ErrInvalidRequest)
			return
		}
		if err := h.validate.Struct(req); err != nil {
			renderError(w, r, apierrors.ErrValidation("recipients", "All addresses must be valid email addresses"))
			return
		}
	}

	if err := h.service.EmailReport(r.Context(), req.Recipients, req.CC); err != nil {
		switch {
		case errors.Is(err, services.ErrNoSession):
			renderError(w, r, apierrors.ErrNoSession)
		case errors.Is(err, services.ErrEmailNotConfigured):
			renderError(w, r, apierrors.ErrEmailNotConfigured)
		default:
			h.logger.ErrorContext(r.Context(), "report email failed", slog.String("error", err.Error()))
			renderError(w, r, apierrors.ErrEmailFailed)
		}
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"success": true,
		"message": "Report email sent",
	})
}

func (h *ReportHandler) renderReportError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, services.ErrNoSession) {
		renderError(w, r, apierrors.ErrNoSession)
		return
	}
	h.logger.ErrorContext(r.Context(), "report generation failed", slog.String("error", err.Error()))
	renderError(w, r, apierrors.ErrReportFailed)
}

func (h *ReportHandler) streamArtifact(w http.ResponseWriter, artifact *services.ReportArtifact) {
	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(artifact.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(artifact.Data)
}
