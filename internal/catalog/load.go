package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/grindlemire/iconforge/internal/log"
)

// DataFileName is the conventional name of the catalog data file.
const DataFileName = "iconforge.data.json"

// Catalog is the immutable, in-memory set of class entries.
type Catalog struct {
	entries []*Entry
	sorted  []*Entry
	byName  map[string]*Entry
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Kind: NotFound, Path: path}
		}
		return nil, &LoadError{Kind: NotFound, Path: path, Err: err}
	}

	cat, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}

	log.Catalog("loaded catalog", "path", path, "entries", cat.Len())
	return cat, nil
}

// Parse decodes catalog JSON. Two shapes are accepted: a bare array of
// entries, or an object whose "classes" field holds that array.
func Parse(data []byte) (*Catalog, error) {
	records, err := decodeRecords(data)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		e, err := FromRecord(r)
		if err != nil {
			return nil, shapeErrorf("entry %d: %w", i, err)
		}
		if seen[e.Name] {
			log.Warn("catalog", "dropping duplicate entry", "name", e.Name, "index", i)
			continue
		}
		seen[e.Name] = true
		entries = append(entries, e)
	}

	return New(entries), nil
}

func decodeRecords(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		var raw any
		err := json.Unmarshal(trimmed, &raw)
		return nil, &LoadError{Kind: ParseError, Err: err}
	}

	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var records []Record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, &LoadError{Kind: ShapeError, Err: err}
		}
		return records, nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		var wrapped struct {
			Classes *[]Record `json:"classes"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, &LoadError{Kind: ShapeError, Err: err}
		}
		if wrapped.Classes == nil {
			return nil, shapeErrorf("object has no \"classes\" array")
		}
		return *wrapped.Classes, nil
	default:
		return nil, shapeErrorf("expected an array of entries or an object with \"classes\"")
	}
}

// FromRecord decides a Record into its Entry variant.
func FromRecord(r Record) (*Entry, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, fmt.Errorf("missing name")
	}

	e := &Entry{
		Name:          name,
		Color:         strings.TrimSpace(r.Color),
		Description:   r.Description,
		Documentation: r.Documentation,
	}

	switch {
	case len(r.Paths) > 0:
		e.Kind = KindIcon
		e.Paths = r.Paths
		e.ViewBox = DefaultViewBox
		if r.ViewBox != nil {
			if *r.ViewBox <= 0 {
				return nil, fmt.Errorf("%s: viewBox must be positive, got %v", name, *r.ViewBox)
			}
			e.ViewBox = *r.ViewBox
		}
	case r.Snippet != "":
		e.Kind = KindSnippet
		e.Snippet = r.Snippet
	case e.Color != "" || e.Doc() != "":
		e.Kind = KindSwatch
	default:
		return nil, fmt.Errorf("%s: no paths, snippet, color or documentation", name)
	}
	return e, nil
}

// New builds a catalog from entries already in file order. Entries are not
// copied and must not be modified afterwards.
func New(entries []*Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byName:  make(map[string]*Entry, len(entries)),
	}
	for _, e := range entries {
		if _, ok := c.byName[e.Name]; !ok {
			c.byName[e.Name] = e
		}
	}

	c.sorted = make([]*Entry, len(entries))
	copy(c.sorted, entries)
	SortForDisplay(c.sorted)
	return c
}

// SortForDisplay orders entries by name with locale-aware, numeric-aware,
// case-insensitive comparison, so "is-size-2" sorts before "is-size-10".
// The sort is stable.
func SortForDisplay(entries []*Entry) {
	col := collate.New(language.Und, collate.Numeric, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(entries, func(i, j int) bool {
		return col.CompareString(entries[i].Name, entries[j].Name) < 0
	})
}

// Entries returns entries in file order.
func (c *Catalog) Entries() []*Entry {
	return c.entries
}

// Sorted returns entries in display order.
func (c *Catalog) Sorted() []*Entry {
	return c.sorted
}

// Lookup finds an entry by exact name.
func (c *Catalog) Lookup(name string) (*Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Records returns the on-disk representation of every entry in file order.
func (c *Catalog) Records() []Record {
	records := make([]Record, len(c.entries))
	for i, e := range c.entries {
		records[i] = e.Record()
	}
	return records
}
