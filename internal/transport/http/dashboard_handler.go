package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"srdash/internal/dataprocessing"
	apierrors "srdash/internal/errors"
	"srdash/internal/services"
)

// uploadFieldName is the multipart form field carrying transaction files.
const uploadFieldName = "files"

// DashboardHandler serves the upload and statistics endpoints.
type DashboardHandler struct {
	service        *services.DashboardService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(service *services.DashboardService, maxUploadBytes int64, logger *slog.Logger) *DashboardHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/upload", h.Upload)
	r.Get("/overview", h.Overview)
	r.Get("/states", h.States)

	r.Route("/merchants", func(r chi.Router) {
		r.Get("/", h.Merchants)
		r.Route("/{merchantID}", func(r chi.Router) {
			r.Get("/", h.MerchantDetail)
			r.Get("/range", h.MerchantRange)
		})
	})

	return r
}

// Upload accepts a multipart batch of transaction exports, merges them and
// replaces the session table.
func (h *DashboardHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		renderError(w, r, apierrors.ErrInvalidRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[uploadFieldName]
	if len(headers) == 0 {
		renderError(w, r, apierrors.ErrNoUpload)
		return
	}

	files := make([]dataprocessing.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			renderError(w, r, apierrors.ErrInvalidRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			renderError(w, r, apierrors.ErrInvalidRequest)
			return
		}
		files = append(files, dataprocessing.UploadFile{Name: fh.Filename, Data: data})
	}

	summary, err := h.service.ProcessUpload(r.Context(), files)
	if err != nil {
		if errors.Is(err, dataprocessing.ErrNoValidData) {
			var details interface{}
			if summary != nil {
				details = summary.FileErrors
			}
			renderError(w, r, apierrors.NoValidDataWithErrors(details))
			return
		}
		h.logger.ErrorContext(r.Context(), "upload processing failed", slog.String("error", err.Error()))
		renderError(w, r, apierrors.ErrInternalServer)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, summary)
}

// Overview returns overall statistics across every merchant in the session.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.service.Overview(r.Context())
	if err != nil {
		renderError(w, r, serviceError(err))
		return
	}
	render.JSON(w, r, ov)
}

// Merchants lists merchant IDs in first-seen order.
func (h *DashboardHandler) Merchants(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.service.Merchants(r.Context())
	if err != nil {
		renderError(w, r, serviceError(err))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"merchants": merchants,
		"count":     len(merchants),
	})
}

// MerchantDetail returns the full statistics view for one merchant.
func (h *DashboardHandler) MerchantDetail(w http.ResponseWriter, r *http.Request) {
	merchantID := chi.URLParam(r, "merchantID")
	detail, err := h.service.MerchantDetail(r.Context(), merchantID)
	if err != nil {
		if errors.Is(err, services.ErrMerchantNotFound) {
			renderError(w, r, apierrors.MerchantNotFoundError(merchantID))
			return
		}
		renderError(w, r, serviceError(err))
		return
	}
	render.JSON(w, r, detail)
}

// MerchantRange returns the resolved issue-timestamp range for one merchant.
func (h *DashboardHandler) MerchantRange(w http.ResponseWriter, r *http.Request) {
	merchantID := chi.URLParam(r, "merchantID")
	rng, err := h.service.MerchantRange(r.Context(), merchantID)
	if err != nil {
		if errors.Is(err, services.ErrMerchantNotFound) {
			renderError(w, r, apierrors.MerchantNotFoundError(merchantID))
			return
		}
		renderError(w, r, serviceError(err))
		return
	}
	render.JSON(w, r, rng)
}

// States returns the canonical state vocabulary with display colors.
func (h *DashboardHandler) States(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"states": h.service.States(),
	})
}
