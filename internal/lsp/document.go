package lsp

import (
	"sync"

	"github.com/grindlemire/iconforge/internal/textdoc"
)

// Position, Range and Location use the shared text model so feature code and
// the wire format agree on UTF-16 characters.
type (
	Position = textdoc.Position
	Range    = textdoc.Range
	Location = textdoc.Location
)

// DocumentManager tracks all open documents.
type DocumentManager struct {
	mu   sync.RWMutex
	docs map[string]*textdoc.Document
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		docs: make(map[string]*textdoc.Document),
	}
}

// Open records a newly opened document.
func (dm *DocumentManager) Open(uri, languageID, content string, version int) *textdoc.Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc := &textdoc.Document{
		URI:        uri,
		LanguageID: languageID,
		Text:       content,
		Version:    version,
	}
	dm.docs[uri] = doc
	return snapshot(doc)
}

// Update replaces a document's content. Unknown documents are opened with an
// empty language ID.
func (dm *DocumentManager) Update(uri, content string, version int) *textdoc.Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[uri]
	if !ok {
		doc = &textdoc.Document{URI: uri}
		dm.docs[uri] = doc
	}
	doc.Text = content
	doc.Version = version
	return snapshot(doc)
}

// Close closes a document.
func (dm *DocumentManager) Close(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.docs, uri)
}

// Get returns a copy of the document, or nil when it is not open. The copy is
// safe to read while later changes arrive.
func (dm *DocumentManager) Get(uri string) *textdoc.Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, ok := dm.docs[uri]
	if !ok {
		return nil
	}
	return snapshot(doc)
}

// All returns copies of all open documents.
func (dm *DocumentManager) All() []*textdoc.Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*textdoc.Document, 0, len(dm.docs))
	for _, doc := range dm.docs {
		docs = append(docs, snapshot(doc))
	}
	return docs
}

func snapshot(doc *textdoc.Document) *textdoc.Document {
	cp := *doc
	return &cp
}

// uriToPath converts a file:// URI to a file path.
func uriToPath(uri string) string {
	const prefix = "file://"
	if len(uri) > len(prefix) && uri[:len(prefix)] == prefix {
		return uri[len(prefix):]
	}
	return uri
}
