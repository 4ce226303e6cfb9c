// Package extension wires the catalog features to an editor host: it loads
// the catalog once, registers completion, hover and color providers, and
// keeps the active document's color markers current.
package extension

import (
	"slices"

	"github.com/grindlemire/iconforge/internal/decorate"
	"github.com/grindlemire/iconforge/internal/lint"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

// Disposable releases a registration.
type Disposable interface {
	Dispose()
}

// DisposeFunc adapts a function to Disposable.
type DisposeFunc func()

// Dispose calls f.
func (f DisposeFunc) Dispose() {
	if f != nil {
		f()
	}
}

// Selector is the set of language IDs a provider applies to.
type Selector []string

// Match reports whether languageID is in the selector.
func (s Selector) Match(languageID string) bool {
	return slices.Contains(s, languageID)
}

// Host is the editor side of the extension. The LSP server implements it; tests
// use an in-memory fake.
type Host interface {
	ShowErrorMessage(msg string)

	RegisterCompletionProvider(sel Selector, p CompletionProvider) Disposable
	RegisterHoverProvider(sel Selector, p HoverProvider) Disposable
	RegisterColorProvider(sel Selector, p ColorProvider) Disposable

	// OnDidChangeActiveEditor fires when focus moves to a document.
	OnDidChangeActiveEditor(fn func(uri string)) Disposable
	// OnDidChangeTextDocument fires after a document's text changed.
	OnDidChangeTextDocument(fn func(uri string)) Disposable

	Document(uri string) (*textdoc.Document, bool)

	// SetMarkers draws one inline marker per span, colored per bucket. Spans
	// are byte offsets into doc. A nil doc with an empty result clears the
	// document's markers.
	SetMarkers(uri string, doc *textdoc.Document, res decorate.Result)
	// PublishDiagnostics reports findings whose spans index into doc.
	PublishDiagnostics(doc *textdoc.Document, findings []lint.Finding)
}
