package routes

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
)

func ApiListEntries(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		search, page := listParams(r)
		result, err := app.Listing.List(search, page)
		if err != nil {
			httpx.LogInternalError(w, r, "listing.list", err)
			return
		}
		render.JSON(w, r, result)
	}
}

func ApiGetEntry(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := filenameParam(r)
		entry, err := app.Store.Load(filename)
		if err != nil {
			httpx.LogStoreError(w, r, "store.load", filename, err)
			return
		}
		render.JSON(w, r, map[string]any{
			"filename": filename,
			"entry":    entry,
		})
	}
}

func ApiListFields(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defs, err := app.Fields.Load()
		if err != nil {
			httpx.LogInternalError(w, r, "fields.load", err)
			return
		}
		render.JSON(w, r, map[string]any{
			"fields": defs,
		})
	}
}
