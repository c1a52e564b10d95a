package routes

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/seed"
)

func GenerateTestData(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := seed.DefaultCount
		if raw := r.URL.Query().Get("count"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 || n > seed.MaxCount {
				httpx.LogStatusMsg(w, r, http.StatusBadRequest, log.DebugLevel, "request.count",
					"count must be between 1 and %d", seed.MaxCount)
				return
			}
			count = n
		}

		written, err := app.Seeder.Generate(count)
		if err != nil {
			log.Errorf("seed.generate: %s", err)
			app.Flash.Notify(w, r, httpx.FlashError, fmt.Sprintf("Generated %d of %d test entries", written, count))
		} else {
			log.Infof("seed.generate: %d entries", written)
			app.Flash.Notify(w, r, httpx.FlashSuccess, fmt.Sprintf("Generated %d test entries", written))
		}
		http.Redirect(w, r, "/entries", http.StatusSeeOther)
	}
}
