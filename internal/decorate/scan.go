// Package decorate finds colored class names in a document and groups their
// spans by color so an editor can draw one marker style per color.
package decorate

import (
	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/classname"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

// Bucket holds every span decorated with one color, in document order.
type Bucket struct {
	Color string
	Spans []textdoc.Span
}

// Result is the color-to-spans mapping for a document. Buckets are ordered by
// the first occurrence of their color.
type Result []Bucket

// Scan tokenizes text and records the span of every class whose entry
// carries a color.
func Scan(text string, cat *catalog.Catalog) Result {
	var res Result
	index := make(map[string]int)
	for _, s := range classname.Find(text) {
		e, ok := cat.Lookup(text[s.Start:s.End])
		if !ok || !e.HasColor() {
			continue
		}
		i, seen := index[e.Color]
		if !seen {
			i = len(res)
			index[e.Color] = i
			res = append(res, Bucket{Color: e.Color})
		}
		res[i].Spans = append(res[i].Spans, s)
	}
	return res
}

// Len returns the total number of decorated spans.
func (r Result) Len() int {
	n := 0
	for _, b := range r {
		n += len(b.Spans)
	}
	return n
}

// colors returns the distinct colors in first-seen order.
func (r Result) colors() []string {
	colors := make([]string, len(r))
	for i, b := range r {
		colors[i] = b.Color
	}
	return colors
}
