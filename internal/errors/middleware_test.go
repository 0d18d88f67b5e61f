package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeMiddleware(t *testing.T, handler echo.HandlerFunc) (*httptest.ResponseRecorder, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Middleware()(handler)(c)
	return rec, err
}

func TestMiddleware_NoErrorPassesThrough(t *testing.T) {
	rec, err := invokeMiddleware(t, func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestMiddleware_StructuredErrorBecomesJSON(t *testing.T) {
	rec, err := invokeMiddleware(t, func(echo.Context) error {
		return ValidationError("limit out of range").WithContext("limit", -1)
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "limit out of range", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
}

func TestMiddleware_DomainSentinelMapped(t *testing.T) {
	rec, err := invokeMiddleware(t, func(echo.Context) error {
		return domain.ErrConversationNotFound
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMiddleware_UnknownErrorHidesDetails(t *testing.T) {
	rec, err := invokeMiddleware(t, func(echo.Context) error {
		return errors.New("password=hunter2 leaked into an error")
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Error)
}

func TestMiddleware_EchoHTTPErrorPassesThrough(t *testing.T) {
	_, err := invokeMiddleware(t, func(echo.Context) error {
		return echo.NewHTTPError(http.StatusMethodNotAllowed)
	})

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusMethodNotAllowed, httpErr.Code)
}

func TestTypeForStatus(t *testing.T) {
	assert.Equal(t, TypeValidation, typeForStatus(http.StatusBadRequest))
	assert.Equal(t, TypeNotFound, typeForStatus(http.StatusNotFound))
	assert.Equal(t, TypeConflict, typeForStatus(http.StatusConflict))
	assert.Equal(t, TypeExternal, typeForStatus(http.StatusBadGateway))
	assert.Equal(t, TypeInternal, typeForStatus(http.StatusTeapot))
}
