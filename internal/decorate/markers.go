package decorate

import (
	"sync"

	"github.com/grindlemire/iconforge/internal/textdoc"
)

// Sink draws marker sets for a document. doc is the snapshot the spans of res
// index into; it is nil, and res empty, when the document's markers are
// cleared.
type Sink interface {
	SetMarkers(uri string, doc *textdoc.Document, res Result)
}

// Markers caches the marker sets currently shown, per document. Every Apply
// clears the previous set before drawing the new one, so no stale marker
// survives a scan.
type Markers struct {
	mu    sync.Mutex
	sink  Sink
	shown map[string]Result
}

// NewMarkers creates a marker cache drawing through sink.
func NewMarkers(sink Sink) *Markers {
	return &Markers{sink: sink, shown: make(map[string]Result)}
}

// Apply replaces the markers of doc with res, a scan of doc's text.
func (m *Markers) Apply(doc *textdoc.Document, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	uri := doc.URI
	if _, ok := m.shown[uri]; ok {
		delete(m.shown, uri)
		m.sink.SetMarkers(uri, nil, nil)
	}
	if len(res) == 0 {
		return
	}
	m.shown[uri] = res
	m.sink.SetMarkers(uri, doc, res)
}

// Clear removes the markers for uri.
func (m *Markers) Clear(uri string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.shown[uri]; ok {
		delete(m.shown, uri)
		m.sink.SetMarkers(uri, nil, nil)
	}
}

func (m *Markers) current(uri string) (Result, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.shown[uri]
	return res, ok
}

// Dispose clears every outstanding marker set.
func (m *Markers) Dispose() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for uri := range m.shown {
		m.sink.SetMarkers(uri, nil, nil)
	}
	m.shown = make(map[string]Result)
}
