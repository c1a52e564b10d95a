// Package seed fills the store with synthetic entries for demos.
package seed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/store"
)

const (
	DefaultCount = 100
	MaxCount     = 1000
	spread       = 30 * 24 * time.Hour
)

var (
	surnames   = []string{"王", "李", "張", "劉", "陳", "楊", "黃", "趙", "吳", "周", "徐", "孫", "林", "郭", "何"}
	givenNames = []string{"小明", "大華", "美玲", "志強", "淑芬", "建國", "怡君", "家豪", "雅婷", "俊傑", "欣怡", "宗翰", "佳穎", "冠宇", "詩涵"}
	domains    = []string{"gmail.com", "yahoo.com.tw", "hotmail.com", "outlook.com", "example.com"}
	messages   = []string{
		"請盡快與我聯絡，謝謝。",
		"想詢問產品的價格與交期。",
		"對貴公司的服務很滿意。",
		"希望能安排一次現場說明。",
		"請提供更多相關資料。",
		"I would like to know more about your plans.",
		"Please call me back after 6 pm.",
	}
)

type Saver interface {
	Exists(filename string) bool
	Save(filename string, entry model.Entry) error
}

type Generator struct {
	store Saver
	rand  *rand.Rand
	now   func() time.Time
}

func New(s Saver) *Generator {
	return &Generator{
		store: s,
		rand:  rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
		now:   time.Now,
	}
}

// WithSource fixes the randomness and the clock, for reproducible output.
func (g *Generator) WithSource(r *rand.Rand, now func() time.Time) *Generator {
	g.rand = r
	g.now = now
	return g
}

// Generate writes n new entries with timestamps spread over the last 30 days
// and returns how many were written. A timestamp whose filename is already
// taken is moved back one second at a time until it is free, so no entry is
// dated after now.
func (g *Generator) Generate(n int) (int, error) {
	now := g.now()
	taken := make(map[string]bool, n)

	var result *multierror.Error
	written := 0
	for i := 0; i < n; i++ {
		ts := g.free(now.Add(-time.Duration(g.rand.Int64N(int64(spread)))), taken)
		name := store.NewFilename(ts)
		taken[name] = true

		if err := g.store.Save(name, g.entry(ts)); err != nil {
			result = multierror.Append(result, err)
			continue
		}
		written++
	}
	return written, result.ErrorOrNil()
}

// free steps ts back until its filename is neither taken nor on disk.
func (g *Generator) free(ts time.Time, taken map[string]bool) time.Time {
	for name := store.NewFilename(ts); taken[name] || g.store.Exists(name); name = store.NewFilename(ts) {
		ts = ts.Add(-time.Second)
	}
	return ts
}

func (g *Generator) entry(ts time.Time) model.Entry {
	name := pick(g.rand, surnames) + pick(g.rand, givenNames)

	e := model.NewEntry()
	e.Set("name", name)
	e.Set("email", g.email())
	e.Set("phone", fmt.Sprintf("09%02d-%03d-%03d", g.rand.IntN(100), g.rand.IntN(1000), g.rand.IntN(1000)))
	e.Set("message", pick(g.rand, messages))
	e.Set(model.KeySubmittedAt, store.FormatTimestamp(ts))
	return e
}

func (g *Generator) email() string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	var b strings.Builder
	for i, n := 0, 5+g.rand.IntN(6); i < n; i++ {
		b.WriteByte(letters[g.rand.IntN(len(letters))])
	}
	fmt.Fprintf(&b, "%d@%s", g.rand.IntN(1000), pick(g.rand, domains))
	return b.String()
}

func pick(r *rand.Rand, from []string) string {
	return from[r.IntN(len(from))]
}
