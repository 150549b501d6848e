package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApplication(t *testing.T) {
	application, err := NewApplication()
	require.NoError(t, err)
	require.NotNil(t, application.Router)
	require.NotNil(t, application.Server)

	srv := httptest.NewServer(application.Router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRoutesRegistered(t *testing.T) {
	application, err := NewApplication()
	require.NoError(t, err)

	srv := httptest.NewServer(application.Router)
	defer srv.Close()

	// Statistics endpoints exist but report a missing session before any
	// upload.
	for _, path := range []string{"/api/overview", "/api/merchants"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode, path)
	}

	resp, err := http.Get(srv.URL + "/api/states")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
