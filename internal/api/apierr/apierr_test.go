package apierr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestWriteEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events/99", nil)

	Write(rec, req, http.StatusNotFound, "Event not found", nil, "production")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	got := decodeBody(t, rec)
	require.Equal(t, "Event not found", got["message"])
	require.NotContains(t, got, "detail")
}

func TestWriteDetailOnlyOutsideProduction(t *testing.T) {
	cause := errors.New("pq: connection refused")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	Write(rec, req, http.StatusInternalServerError, "internal server error", cause, "development")
	require.Equal(t, cause.Error(), decodeBody(t, rec)["detail"])

	rec = httptest.NewRecorder()
	Write(rec, req, http.StatusInternalServerError, "internal server error", cause, "production")
	require.NotContains(t, decodeBody(t, rec), "detail")
}

func TestInternalHidesCause(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/events", nil)

	Internal(rec, req, errors.New("boom"), "production")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "internal server error", decodeBody(t, rec)["message"])
}
