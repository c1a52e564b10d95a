package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/store"
)

func seeded(t *testing.T, n int) (*store.Store, string) {
	t.Helper()
	dir := t.TempDir()
	s := store.New(osfs.New(dir))
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < n; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		e := model.NewEntry()
		e.Set("name", fmt.Sprintf("user %02d", i))
		e.Set("email", fmt.Sprintf("user%02d@example.com", i))
		e.Set("phone", fmt.Sprintf("09%08d", i))
		e.Set(model.KeySubmittedAt, store.FormatTimestamp(ts))
		require.NoError(t, s.Save(store.NewFilename(ts), e))
	}
	return s, dir
}

func TestListPagination(t *testing.T) {
	s, _ := seeded(t, 25)
	engine := New(s)

	p, err := engine.List("", 1)
	require.NoError(t, err)
	assert.Equal(t, 25, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, "user 24", p.Items[0].Name, "newest first")
	assert.Equal(t, []int{1, 2, 3}, p.PageRange)

	p, err = engine.List("", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Items, 5)
	assert.Equal(t, "user 00", p.Items[4].Name)

	p, err = engine.List("", 10)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Page)
	assert.Len(t, p.Items, 5)

	p, err = engine.List("", -4)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
}

func TestListPageSizeOption(t *testing.T) {
	s, _ := seeded(t, 7)
	p, err := New(s, WithPageSize(3)).List("", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Items, 1)
}

func TestListEmpty(t *testing.T) {
	s, _ := seeded(t, 0)
	p, err := New(s).List("", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 0, p.Total)
	assert.Empty(t, p.Items)
	assert.Empty(t, p.PageRange)
}

func TestListSearch(t *testing.T) {
	s, _ := seeded(t, 25)
	e := model.NewEntry()
	e.Set("name", "王小明")
	e.Set("email", "Ming.Wang@Example.COM")
	e.Set("phone", "0987654321")
	e.Set(model.KeySubmittedAt, "2024-02-01 09:00:00")
	require.NoError(t, s.Save("20240201_090000.yaml", e))

	engine := New(s)
	tests := map[string]int{
		"王小明":           1,
		"ming.wang":     1,
		"EXAMPLE.com":   26,
		"user 1":        10,
		"0987":          1,
		"2024-02-01":    1,
		"nobody-at-all": 0,
	}
	for term, want := range tests {
		p, err := engine.List(term, 1)
		require.NoError(t, err)
		assert.Equal(t, want, p.Total, term)
		assert.Equal(t, term, p.Search)
	}

	p, err := engine.List("王小明", 1)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "20240201_090000.yaml", p.Items[0].Filename)
}

func TestListNoMatches(t *testing.T) {
	s, _ := seeded(t, 3)
	p, err := New(s).List("zzz", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 1, p.TotalPages)
	assert.Empty(t, p.Items)
	assert.Empty(t, p.PageRange)
}

func TestListCorruptEntryFallback(t *testing.T) {
	s, dir := seeded(t, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20991231_000000.yaml"), []byte("- not\n- a map\n"), 0o644))

	p, err := New(s).List("", 1)
	require.NoError(t, err)
	require.Len(t, p.Items, 3)
	assert.Equal(t, model.Summary{Filename: "20991231_000000.yaml"}, p.Items[0])

	_, err = New(s, WithFallback(FailOnError)).List("", 1)
	var decodeErr *store.DeserializationError
	assert.True(t, errors.As(err, &decodeErr), "got %v", err)
}

type failingSource struct{}

func (failingSource) ListFilenames() ([]string, error) { return []string{"a.yaml"}, nil }
func (failingSource) Load(string) (model.Entry, error) {
	return model.Entry{}, errors.New("disk on fire")
}

func TestBlankOnErrorPropagatesOtherErrors(t *testing.T) {
	_, err := New(failingSource{}).List("", 1)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		total, page, size   int
		wantPage, wantPages int
	}{
		{0, 1, 10, 1, 1},
		{0, 7, 10, 1, 1},
		{10, 2, 10, 1, 1},
		{11, 2, 10, 2, 2},
		{25, 10, 10, 3, 3},
		{25, 0, 10, 1, 3},
	}
	for _, tt := range tests {
		page, pages := Paginate(tt.total, tt.page, tt.size)
		assert.Equal(t, tt.wantPage, page, "%+v", tt)
		assert.Equal(t, tt.wantPages, pages, "%+v", tt)
	}
}

func TestWindow(t *testing.T) {
	assert.Equal(t, []int{}, Window(1, 1))
	assert.Equal(t, []int{1, 2, 3}, Window(1, 10))
	assert.Equal(t, []int{3, 4, 5, 6, 7}, Window(5, 10))
	assert.Equal(t, []int{8, 9, 10}, Window(10, 10))
	assert.Equal(t, []int{1, 2}, Window(2, 2))
}
