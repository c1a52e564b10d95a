package fields

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/quick-form/model"
)

const sample = `fields:
  - name: name
    label: 姓名
    type: text
    required: true
  - name: email
    label: Email
    type: email
  - name: message
`

func loaderWith(t *testing.T, content string) *Loader {
	t.Helper()
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "fields.yaml", []byte(content), 0o644))
	return NewWithFS(fs, "fields.yaml")
}

func TestLoadKeepsOrderAndDefaults(t *testing.T) {
	defs, err := loaderWith(t, sample).Load()
	require.NoError(t, err)

	assert.Equal(t, []model.FieldDefinition{
		{Name: "name", Label: "姓名", Type: "text", Required: true},
		{Name: "email", Label: "Email", Type: "email"},
		{Name: "message", Label: "message", Type: "text"},
	}, defs)
}

func TestLoadRereadsEveryCall(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "fields.yaml", []byte(sample), 0o644))
	l := NewWithFS(fs, "fields.yaml")

	defs, err := l.Load()
	require.NoError(t, err)
	assert.Len(t, defs, 3)

	require.NoError(t, util.WriteFile(fs, "fields.yaml", []byte("fields:\n  - name: only\n"), 0o644))
	defs, err = l.Load()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "only", defs[0].Name)
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"malformed yaml": "fields: [name: x\n",
		"no fields key":  "other: 1\n",
		"missing name":   "fields:\n  - label: x\n",
		"duplicate name": "fields:\n  - name: a\n  - name: a\n",
		"reserved name":  "fields:\n  - name: submitted_at\n",
		"wrong shape":    "fields: 3\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loaderWith(t, content).Load()
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, "fields.yaml", cfgErr.Path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewWithFS(memfs.New(), "fields.yaml").Load()
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoadEmptyListIsValid(t *testing.T) {
	defs, err := loaderWith(t, "fields: []\n").Load()
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestNewReadsHostFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	defs, err := New(path).Load()
	require.NoError(t, err)
	assert.Len(t, defs, 3)
}
