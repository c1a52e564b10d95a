package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/routes"
)

func main() {
	cfg, err := config.ParseFlags()
	if err != nil {
		log.Fatal("main.config:", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}
	if cfg.LogFile != "" {
		defer log.ToFile(cfg.LogFile).Close()
	}
	if cfg.FlashSecret == config.DefaultFlashSecret {
		log.Warnf("main.config: using the default flash secret, set -flash-secret in production")
	}

	app, err := app.New(cfg)
	if err != nil {
		log.Fatal("main.app:", err)
	}

	// report a broken field config at startup; it is re-read on every request anyway
	if _, err := app.Fields.Load(); err != nil {
		log.Warnf("main.fields: %s", err)
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("main.server:", err)
	}
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info("Listening on " + cfg.Url())
	return srv.ListenAndServe()
}
