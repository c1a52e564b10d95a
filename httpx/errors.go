package httpx

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/store"
)

// Will log an error, and send an HTTP response with status 500 and default text
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %+v", code, err)
	respond(w, r, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// Will log a debug message, and send an HTTP response with status 404 and default text
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any) {
	log.Debugf("%s: not found (%v)", code, id)
	respond(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound))
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Log(level, code+":", errMsg)
	respond(w, r, status, errMsg)
}

// LogStoreError answers a failed store operation on filename: 404 when the
// entry does not exist or the name is invalid, 500 otherwise. Undecodable
// entries are reported as server errors.
func LogStoreError(w http.ResponseWriter, r *http.Request, code string, filename string, err error) {
	if errors.Is(err, store.ErrNotFound) {
		LogNotFound(w, r, code, filename)
		return
	}
	LogInternalError(w, r, code, err)
}

func respond(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if !wantsJSON(r) {
		http.Error(w, msg, status)
		return
	}
	render.Status(r, status)
	render.JSON(w, r, map[string]string{"error": msg})
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		render.GetAcceptedContentType(r) == render.ContentTypeJSON
}
