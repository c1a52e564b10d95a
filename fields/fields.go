// Package fields loads the form field definitions.
package fields

import (
	"fmt"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mbolis/quick-form/model"
)

// ConfigError reports a missing or malformed field configuration.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("field config %s: %s", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

type document struct {
	Fields *[]model.FieldDefinition `yaml:"fields"`
}

type Loader struct {
	fs   billy.Filesystem
	path string
}

// New returns a loader reading the file at path on the host filesystem.
func New(path string) *Loader {
	return NewWithFS(osfs.New(filepath.Dir(path)), filepath.Base(path))
}

func NewWithFS(fs billy.Filesystem, path string) *Loader {
	return &Loader{fs: fs, path: path}
}

// Load reads the definitions again on every call, so edits to the file
// apply to the next request.
func (l *Loader) Load() ([]model.FieldDefinition, error) {
	data, err := util.ReadFile(l.fs, l.path)
	if err != nil {
		return nil, &ConfigError{l.path, errors.Wrap(err, "read")}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigError{l.path, errors.Wrap(err, "parse")}
	}
	if doc.Fields == nil {
		return nil, &ConfigError{l.path, errors.New("missing 'fields' list")}
	}

	if err := validate(*doc.Fields); err != nil {
		return nil, &ConfigError{l.path, err}
	}
	return *doc.Fields, nil
}

func validate(defs []model.FieldDefinition) error {
	var result *multierror.Error
	seen := make(map[string]bool, len(defs))
	for i := range defs {
		f := &defs[i]
		switch {
		case f.Name == "":
			result = multierror.Append(result, errors.Errorf("field #%d has no name", i+1))
			continue
		case f.Name == model.KeySubmittedAt || f.Name == model.KeyUpdatedAt:
			result = multierror.Append(result, errors.Errorf("field %q uses a reserved name", f.Name))
		case seen[f.Name]:
			result = multierror.Append(result, errors.Errorf("field %q is defined twice", f.Name))
		}
		seen[f.Name] = true

		if f.Label == "" {
			f.Label = f.Name
		}
		if f.Type == "" {
			f.Type = "text"
		}
	}
	return result.ErrorOrNil()
}
