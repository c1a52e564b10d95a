package app

import (
	"time"

	"github.com/mbolis/quick-form/config"
	"github.com/mbolis/quick-form/fields"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/listing"
	"github.com/mbolis/quick-form/seed"
	"github.com/mbolis/quick-form/store"
)

type App struct {
	config.Config
	Store   *store.Store
	Fields  *fields.Loader
	Listing *listing.Engine
	Seeder  *seed.Generator
	Flash   *httpx.Flasher
	Views   *httpx.Views
	Now     func() time.Time
}

// New assembles the application from cfg. Nothing is shared between two
// Apps built from different configs.
func New(cfg config.Config) (App, error) {
	flasher := httpx.NewFlasher(cfg.FlashSecret)
	views, err := httpx.NewViews(flasher)
	if err != nil {
		return App{}, err
	}

	s := store.Open(cfg)
	return App{
		Config:  cfg,
		Store:   s,
		Fields:  fields.New(cfg.FieldsPath),
		Listing: listing.New(s, listing.WithPageSize(cfg.PageSize)),
		Seeder:  seed.New(s),
		Flash:   flasher,
		Views:   views,
		Now:     time.Now,
	}, nil
}
