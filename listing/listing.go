// Package listing searches and paginates stored entries.
package listing

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/store"
)

const DefaultPageSize = 10

// Source is the part of the entry store the engine reads from.
type Source interface {
	ListFilenames() ([]string, error)
	Load(filename string) (model.Entry, error)
}

// Fallback decides what a listing shows for an entry that failed to load.
// Returning an error aborts the listing.
type Fallback func(filename string, err error) (model.Entry, error)

// BlankOnError shows undecodable entries as rows with blank fields.
func BlankOnError(filename string, err error) (model.Entry, error) {
	var decodeErr *store.DeserializationError
	if !errors.As(err, &decodeErr) {
		return model.Entry{}, err
	}
	log.Warnf("listing.project: %s", err)
	return model.NewEntry(), nil
}

func FailOnError(filename string, err error) (model.Entry, error) {
	return model.Entry{}, err
}

type Engine struct {
	src      Source
	pageSize int
	fallback Fallback
}

type Option func(*Engine)

func WithPageSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

func WithFallback(f Fallback) Option {
	return func(e *Engine) {
		if f != nil {
			e.fallback = f
		}
	}
}

func New(src Source, opts ...Option) *Engine {
	e := &Engine{
		src:      src,
		pageSize: DefaultPageSize,
		fallback: BlankOnError,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// List returns the requested page of entries matching search, newest first.
// Out of range pages are clamped.
func (e *Engine) List(search string, page int) (model.Page, error) {
	summaries, err := e.summaries()
	if err != nil {
		return model.Page{}, err
	}

	matched := Filter(summaries, search)
	total := len(matched)
	page, totalPages := Paginate(total, page, e.pageSize)

	start := (page - 1) * e.pageSize
	end := min(start+e.pageSize, total)
	items := []model.Summary{}
	if start < end {
		items = matched[start:end]
	}

	return model.Page{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		PageRange:  Window(page, totalPages),
		Search:     search,
	}, nil
}

func (e *Engine) summaries() ([]model.Summary, error) {
	names, err := e.src.ListFilenames()
	if err != nil {
		return nil, err
	}

	out := make([]model.Summary, 0, len(names))
	for _, name := range names {
		entry, err := e.src.Load(name)
		if err != nil {
			// the file may have been removed since it was listed
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			if entry, err = e.fallback(name, err); err != nil {
				return nil, errors.Wrapf(err, "listing.load %s", name)
			}
		}
		out = append(out, Project(name, entry))
	}
	return out, nil
}

func Project(filename string, entry model.Entry) model.Summary {
	return model.Summary{
		Filename:    filename,
		SubmittedAt: entry.Get(model.KeySubmittedAt),
		Name:        entry.Get("name"),
		Email:       entry.Get("email"),
		Phone:       entry.Get("phone"),
	}
}

// Filter keeps the summaries whose name, email, phone or submission time
// contains search, ignoring case. An empty search keeps everything.
func Filter(summaries []model.Summary, search string) []model.Summary {
	if search == "" {
		return summaries
	}
	term := strings.ToLower(search)
	out := make([]model.Summary, 0, len(summaries))
	for _, s := range summaries {
		if contains(s.Name, term) || contains(s.Email, term) || contains(s.Phone, term) || contains(s.SubmittedAt, term) {
			out = append(out, s)
		}
	}
	return out
}

func contains(field, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(field), lowerTerm)
}

// Paginate clamps page into [1, totalPages]. There is always at least one page.
func Paginate(total, page, size int) (clamped, totalPages int) {
	totalPages = (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	clamped = max(1, min(page, totalPages))
	return
}

// Window lists the page numbers shown around page, two either side.
func Window(page, totalPages int) []int {
	if totalPages <= 1 {
		return []int{}
	}
	from, to := max(1, page-2), min(totalPages, page+2)
	pages := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		pages = append(pages, p)
	}
	return pages
}
