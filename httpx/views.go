package httpx

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/pkg/errors"

	"github.com/mbolis/quick-form/log"
)

//go:embed templates
var templateFS embed.FS

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// labelSanitizer allows the inline markup a field label may carry.
func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "small", "br", "span", "sup", "sub")
		policy.AllowAttrs("class").OnElements("span")
		labelPolicy = policy
	})
	return labelPolicy
}

var inputTypes = map[string]string{
	"text":   "text",
	"email":  "email",
	"tel":    "tel",
	"number": "number",
	"date":   "date",
	"url":    "url",
}

var funcs = template.FuncMap{
	"label": func(raw string) template.HTML {
		return template.HTML(strings.TrimSpace(labelSanitizer().Sanitize(raw)))
	},
	"inputType": func(t string) string {
		if it, ok := inputTypes[t]; ok {
			return it
		}
		return "text"
	},
	"pageURL": func(search string, page int) string {
		q := url.Values{"page": {strconv.Itoa(page)}}
		if search != "" {
			q.Set("search", search)
		}
		return "/entries?" + q.Encode()
	},
	"pathEscape": url.PathEscape,
}

// Views renders the HTML pages. Pending flash messages are consumed by the
// page that displays them.
type Views struct {
	pages   map[string]*template.Template
	flasher *Flasher
}

func NewViews(flasher *Flasher) (*Views, error) {
	names, err := templateNames()
	if err != nil {
		return nil, err
	}

	v := &Views{pages: make(map[string]*template.Template, len(names)), flasher: flasher}
	for _, name := range names {
		t, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "views.parse %s", name)
		}
		v.pages[name] = t
	}
	return v, nil
}

func templateNames() ([]string, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, errors.Wrap(err, "views.list")
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".html")
		if name != "layout" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Render executes page with data into a buffer, so that a template failure
// still produces a clean 500.
func (v *Views) Render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	t, ok := v.pages[page]
	if !ok {
		LogInternalError(w, r, "views.render", errors.Errorf("unknown page %q", page))
		return
	}

	buf := NewResponseBuffer()
	if data == nil {
		data = map[string]any{}
	}
	if v.flasher != nil {
		data["Flashes"] = v.flasher.Pop(buf, r)
	}

	buf.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteHeader(status)
	if err := t.Execute(buf, data); err != nil {
		LogInternalError(w, r, "views.render."+page, err)
		return
	}
	if err := buf.Flush(w); err != nil {
		log.Debugf("views.flush: %s", err)
	}
}
