package bookmark

import (
	"fmt"
	"math"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	bookmarkObject  = "bookmark"
	defaultProperty = "default"
)

// Record is the persisted reading position of one book.
type Record struct {
	Progress  float64   `yaml:"progress"`
	PageCount int       `yaml:"pageCount"`
	SavedAt   time.Time `yaml:"savedAt"`
}

// backend is the subset of *gdata.Manager the store needs.
type backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

// Store loads and saves bookmarks. A Store without a backend keeps nothing
// and never fails, so hosts can run where no writable storage exists.
type Store struct {
	backend backend
	name    string
	now     func() time.Time
}

// Open creates a store backed by gdata's per-application storage.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open bookmark storage: %w", err)
	}
	return newStore(m), nil
}

// Memoryless returns a store that persists nothing.
func Memoryless() *Store {
	return newStore(nil)
}

func newStore(b backend) *Store {
	return &Store{backend: b, name: defaultProperty, now: time.Now}
}

// WithName returns a store keyed by name, for hosts showing several books.
func (s *Store) WithName(name string) *Store {
	cp := *s
	if name != "" {
		cp.name = name
	}
	return &cp
}

// Load returns the saved record. found is false when nothing was saved yet
// or the store has no backend.
func (s *Store) Load() (rec Record, found bool, err error) {
	if s.backend == nil || !s.backend.ObjectPropExists(bookmarkObject, s.name) {
		return Record{}, false, nil
	}
	data, err := s.backend.LoadObjectProp(bookmarkObject, s.name)
	if err != nil {
		return Record{}, false, fmt.Errorf("load bookmark %q: %w", s.name, err)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode bookmark %q: %w", s.name, err)
	}
	if math.IsNaN(rec.Progress) || math.IsInf(rec.Progress, 0) {
		return Record{}, false, fmt.Errorf("decode bookmark %q: progress is not finite", s.name)
	}
	return rec, true, nil
}

// Save persists progress for a book with pageCount pages.
func (s *Store) Save(progress float64, pageCount int) error {
	if s.backend == nil {
		return nil
	}
	data, err := yaml.Marshal(Record{Progress: progress, PageCount: pageCount, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("encode bookmark %q: %w", s.name, err)
	}
	if err := s.backend.SaveObjectProp(bookmarkObject, s.name, data); err != nil {
		return fmt.Errorf("save bookmark %q: %w", s.name, err)
	}
	return nil
}

// Position maps a record onto a book with pageCount pages. A record saved
// for a different page count keeps its relative position.
func (r Record) Position(pageCount int) float64 {
	if r.PageCount <= 0 || r.PageCount == pageCount {
		return r.Progress
	}
	return r.Progress / float64(r.PageCount+2) * float64(pageCount+2)
}
