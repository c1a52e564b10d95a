package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.RequestID, middlewares.Logger, middleware.Recoverer)

	root.Get("/", Index())
	root.Get("/form", ShowForm(app))
	root.Post("/submit", Submit(app))
	root.Get("/generate-test-data", GenerateTestData(app))

	root.Route("/entries", func(r chi.Router) {
		r.Get("/", ListEntries(app))
		r.Get("/{filename}", ShowEntry(app))
		r.Get("/{filename}/edit", EditEntryForm(app))
		r.Post("/{filename}/edit", UpdateEntry(app))
		r.Post("/{filename}/delete", DeleteEntry(app))
	})

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/fields", ApiListFields(app))
	api.Get("/entries", ApiListEntries(app))
	api.Get("/entries/{filename}", ApiGetEntry(app))

	return api
}
