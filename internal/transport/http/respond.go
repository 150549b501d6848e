package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	apierrors "srdash/internal/errors"
	"srdash/internal/services"
)

// renderError writes an APIError in the standard error envelope.
func renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
	}
}

// serviceError maps service-layer sentinels onto API errors.
func serviceError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, services.ErrNoSession):
		return apierrors.ErrNoSession
	case errors.Is(err, services.ErrMerchantNotFound):
		return apierrors.ErrMerchantNotFound
	case errors.Is(err, services.ErrEmailNotConfigured):
		return apierrors.ErrEmailNotConfigured
	default:
		return apierrors.ErrInternalServer
	}
}
