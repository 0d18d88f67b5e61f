package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doRequest(srv, http.MethodGet, "/health/live", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
}

func TestHandleReadiness_NoBackendsConfigured(t *testing.T) {
	// With nil pool and nil redis client there is nothing to check.
	srv := newTestServer(nil, nil, nil)

	rec := doRequest(srv, http.MethodGet, "/health/ready", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp["status"])
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doRequest(srv, http.MethodGet, "/version", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dev", resp["version"])
	assert.NotEmpty(t, resp["go_version"])
}

func TestMetricsEndpointExposed(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	rec := doRequest(srv, http.MethodGet, "/metrics", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
