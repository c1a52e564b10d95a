package routes

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/store"
)

type row struct {
	Key   string
	Label string
	Value string
}

func ListEntries(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search, page := listParams(r)
		result, err := app.Listing.List(search, page)
		if err != nil {
			httpx.LogInternalError(w, r, "listing.list", err)
			return
		}

		app.Views.Render(w, r, http.StatusOK, "list", map[string]any{
			"Page": result,
		})
	}
}

func listParams(r *http.Request) (search string, page int) {
	q := r.URL.Query()
	search = q.Get("search")
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return
}

func filenameParam(r *http.Request) string {
	raw := chi.URLParam(r, "filename")
	name, err := url.PathUnescape(raw)
	if err != nil {
		return ""
	}
	return name
}

func ShowEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := filenameParam(r)
		entry, err := app.Store.Load(filename)
		if err != nil {
			httpx.LogStoreError(w, r, "store.load", filename, err)
			return
		}

		defs, err := app.Fields.Load()
		if err != nil {
			httpx.LogInternalError(w, r, "fields.load", err)
			return
		}

		app.Views.Render(w, r, http.StatusOK, "entry", map[string]any{
			"Filename": filename,
			"Rows":     entryRows(entry, defs),
		})
	}
}

// entryRows lists configured fields first, in configured order, then any
// other stored key as it appears in the file.
func entryRows(entry model.Entry, defs []model.FieldDefinition) []row {
	rows := make([]row, 0, entry.Len())
	shown := map[string]bool{}
	for _, f := range defs {
		if v, ok := entry.Lookup(f.Name); ok {
			rows = append(rows, row{f.Name, f.Label, v})
			shown[f.Name] = true
		}
	}
	for _, k := range entry.Keys() {
		if !shown[k] {
			rows = append(rows, row{k, k, entry.Get(k)})
		}
	}
	return rows
}

// extraRows returns stored keys that are not configured fields.
func extraRows(entry model.Entry, defs []model.FieldDefinition) []row {
	configured := make(map[string]bool, len(defs))
	for _, f := range defs {
		configured[f.Name] = true
	}
	var rows []row
	for _, k := range entry.Keys() {
		if !configured[k] {
			rows = append(rows, row{k, k, entry.Get(k)})
		}
	}
	return rows
}

func EditEntryForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := filenameParam(r)
		entry, err := app.Store.Load(filename)
		if err != nil {
			httpx.LogStoreError(w, r, "store.load", filename, err)
			return
		}

		defs, err := app.Fields.Load()
		if err != nil {
			httpx.LogInternalError(w, r, "fields.load", err)
			return
		}

		app.Views.Render(w, r, http.StatusOK, "form", map[string]any{
			"Title":       "Edit " + filename,
			"Action":      "/entries/" + url.PathEscape(filename) + "/edit",
			"Fields":      defs,
			"Values":      entry,
			"Extra":       extraRows(entry, defs),
			"Filename":    filename,
			"SubmitLabel": "Save",
		})
	}
}

func UpdateEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := filenameParam(r)
		entry, err := app.Store.Load(filename)
		if err != nil {
			httpx.LogStoreError(w, r, "store.load", filename, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.parse_form", "invalid form body")
			return
		}

		defs, err := app.Fields.Load()
		if err != nil {
			httpx.LogInternalError(w, r, "fields.load", err)
			return
		}

		location := "/entries/" + url.PathEscape(filename)
		updated := entry.Clone()
		if missing := fillFields(&updated, defs, r); len(missing) > 0 {
			app.Flash.Notify(w, r, httpx.FlashError, "Required fields missing: "+strings.Join(missing, ", "))
			http.Redirect(w, r, location+"/edit", http.StatusSeeOther)
			return
		}
		updated.Set(model.KeyUpdatedAt, store.FormatTimestamp(app.Now()))

		if err := app.Store.Save(filename, updated); err != nil {
			httpx.LogInternalError(w, r, "store.save", err)
			return
		}
		log.Infof("edit: updated %s", filename)

		app.Flash.Notify(w, r, httpx.FlashSuccess, fmt.Sprintf("Entry %s updated", filename))
		http.Redirect(w, r, location, http.StatusSeeOther)
	}
}

func DeleteEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := filenameParam(r)
		if err := app.Store.Delete(filename); err != nil {
			httpx.LogStoreError(w, r, "store.delete", filename, err)
			return
		}
		log.Infof("delete: removed %s", filename)

		app.Flash.Notify(w, r, httpx.FlashSuccess, fmt.Sprintf("Entry %s deleted", filename))
		http.Redirect(w, r, "/entries", http.StatusSeeOther)
	}
}
