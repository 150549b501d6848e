package errors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(http.StatusTeapot, "TEAPOT", "short and stout")

	assert.Equal(t, http.StatusTeapot, err.StatusCode)
	assert.Equal(t, "TEAPOT", err.ErrorCode)
	assert.Equal(t, "short and stout", err.Error())
	assert.Nil(t, err.Details)
}

func TestPredefinedErrors(t *testing.T) {
	tests := []struct {
		err        *APIError
		wantStatus int
		wantCode   string
	}{
		{ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
		{ErrNoValidData, http.StatusUnprocessableEntity, "NO_VALID_DATA"},
		{ErrNoSession, http.StatusConflict, "NO_SESSION_DATA"},
		{ErrMerchantNotFound, http.StatusNotFound, "MERCHANT_NOT_FOUND"},
		{ErrEmailNotConfigured, http.StatusServiceUnavailable, "EMAIL_NOT_CONFIGURED"},
		{ErrEmailFailed, http.StatusBadGateway, "EMAIL_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.StatusCode)
			assert.Equal(t, tt.wantCode, tt.err.ErrorCode)
		})
	}
}

func TestMerchantNotFoundError(t *testing.T) {
	err := MerchantNotFoundError("M-42")

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Contains(t, err.Message, "M-42")
	assert.Equal(t, "M-42", err.Details)
}

func TestRenderSetsStatus(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, render.Render(rec, req, NewErrorResponse(ErrNoValidData)))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "NO_VALID_DATA")
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("recipients", "must contain valid email addresses")

	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	details, ok := err.Details.(ValidationError)
	require.True(t, ok)
	assert.Equal(t, "recipients", details.Field)
}
