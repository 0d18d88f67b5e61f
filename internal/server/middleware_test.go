package server

import (
	"net/http"
	"testing"

	"github.com/KadenLi6741/Localys-sub000/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRequestMetrics_HTTPErrorKeepsItsStatus(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	series401 := metrics.HTTPRequestsTotal.WithLabelValues("POST", "/api/conversations", "401")
	series500 := metrics.HTTPRequestsTotal.WithLabelValues("POST", "/api/conversations", "500")
	before401 := testutil.ToFloat64(series401)
	before500 := testutil.ToFloat64(series500)

	// Missing identity header: requireIdentity returns a raw HTTPError.
	rec := doRequest(srv, http.MethodPost, "/api/conversations", `{"other_user_id": "userB"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, before401+1, testutil.ToFloat64(series401))
	assert.Equal(t, before500, testutil.ToFloat64(series500))
}

func TestRequestMetrics_StructuredErrorStatus(t *testing.T) {
	srv := newTestServer(nil, nil, nil)

	series400 := metrics.HTTPRequestsTotal.WithLabelValues("GET", "/api/search", "400")
	before400 := testutil.ToFloat64(series400)

	rec := doRequest(srv, http.MethodGet, "/api/search", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, before400+1, testutil.ToFloat64(series400))
}
