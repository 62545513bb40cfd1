package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSON(rec, map[string]string{"status": "ok"}, http.StatusOK)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWriteJSON_MarshalError(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSON(rec, make(chan int), http.StatusOK)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteJSONError(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSONError(rec, "Flight not found", http.StatusNotFound)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Flight not found"}`, rec.Body.String())
}
