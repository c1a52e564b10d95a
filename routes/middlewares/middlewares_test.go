package middlewares

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/mbolis/quick-form/log"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })
	return &buf
}

func TestLoggerRecordsRequest(t *testing.T) {
	out := captureLog(t)

	handler := middleware.RequestID(Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	})))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/submit", nil))

	line := out.String()
	assert.Contains(t, line, "level=info")
	assert.Contains(t, line, "method=POST")
	assert.Contains(t, line, "path=/submit")
	assert.Contains(t, line, "status=201")
	assert.Contains(t, line, "bytes=2")
	assert.Contains(t, line, "request_id=")
}

func TestLoggerWarnsOnServerError(t *testing.T) {
	out := captureLog(t)

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/entries", nil))

	line := out.String()
	assert.Contains(t, line, "level=warning")
	assert.Contains(t, line, "status=500")
	assert.NotContains(t, line, "request_id")
}

func TestLoggerDefaultsStatus(t *testing.T) {
	out := captureLog(t)

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, out.String(), "status=200")
}
