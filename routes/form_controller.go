package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/store"
)

func Index() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/entries", http.StatusFound)
	}
}

func ShowForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := app.Fields.Load()
		if err != nil {
			httpx.LogInternalError(w, r, "fields.load", err)
			return
		}

		app.Views.Render(w, r, http.StatusOK, "form", map[string]any{
			"Title":       "New entry",
			"Action":      "/submit",
			"Fields":      defs,
			"Values":      model.NewEntry(),
			"SubmitLabel": "Submit",
		})
	}
}

func Submit(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_form", "invalid form body")
			return
		}

		defs, err := app.Fields.Load()
		if err != nil {
			httpx.LogInternalError(w, r, "fields.load", err)
			return
		}

		entry := model.NewEntry()
		if missing := fillFields(&entry, defs, r); len(missing) > 0 {
			app.Flash.Notify(w, r, httpx.FlashError, "Required fields missing: "+strings.Join(missing, ", "))
			http.Redirect(w, r, "/form", http.StatusSeeOther)
			return
		}

		now := app.Now()
		entry.Set(model.KeySubmittedAt, store.FormatTimestamp(now))
		filename := store.NewFilename(now)
		if app.Store.Exists(filename) {
			log.Warnf("submit: %s already exists and will be overwritten", filename)
		}

		if err := app.Store.Save(filename, entry); err != nil {
			httpx.LogInternalError(w, r, "store.save", err)
			return
		}
		log.Infof("submit: saved %s", filename)

		app.Flash.Notify(w, r, httpx.FlashSuccess, fmt.Sprintf("Form saved to %s", filename))
		http.Redirect(w, r, "/entries", http.StatusSeeOther)
	}
}

// fillFields copies the configured fields from the posted form into entry
// and returns the labels of required fields left empty.
func fillFields(entry *model.Entry, defs []model.FieldDefinition, r *http.Request) (missing []string) {
	for _, f := range defs {
		value := strings.ToValidUTF8(r.PostForm.Get(f.Name), "\uFFFD")
		if f.Required && value == "" {
			missing = append(missing, f.Label)
		}
		entry.Set(f.Name, value)
	}
	return
}
