package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseBufferDefaults(t *testing.T) {
	buf := NewResponseBuffer()
	assert.Equal(t, http.StatusOK, buf.Status())
	assert.Empty(t, buf.Body())
}

func TestResponseBufferFlush(t *testing.T) {
	buf := NewResponseBuffer()
	buf.Header().Set("Content-Type", "text/plain")
	buf.WriteHeader(http.StatusCreated)
	buf.WriteHeader(http.StatusTeapot)
	_, err := buf.Write([]byte("hello"))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, buf.Flush(rec))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "hello", rec.Body.String())
}
