package lsp

import (
	"github.com/grindlemire/iconforge/internal/decorate"
	"github.com/grindlemire/iconforge/internal/extension"
	"github.com/grindlemire/iconforge/internal/lint"
	"github.com/grindlemire/iconforge/internal/log"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

var _ extension.Host = (*Server)(nil)

// MessageType is the severity of a window/showMessage notification.
type MessageType int

const (
	MessageTypeError   MessageType = 1
	MessageTypeWarning MessageType = 2
	MessageTypeInfo    MessageType = 3
	MessageTypeLog     MessageType = 4
)

// ShowMessageParams represents window/showMessage parameters.
type ShowMessageParams struct {
	Type    MessageType `json:"type"`
	Message string      `json:"message"`
}

func (s *Server) showMessage(t MessageType, msg string) {
	if err := s.sendNotification("window/showMessage", ShowMessageParams{Type: t, Message: msg}); err != nil {
		log.Error("server", "show message", "error", err)
	}
}

// ShowErrorMessage shows msg to the user as an error.
func (s *Server) ShowErrorMessage(msg string) {
	s.showMessage(MessageTypeError, msg)
}

// RegisterCompletionProvider implements extension.Host.
func (s *Server) RegisterCompletionProvider(sel extension.Selector, p extension.CompletionProvider) extension.Disposable {
	return s.registry.AddCompletion(sel, p)
}

// RegisterHoverProvider implements extension.Host.
func (s *Server) RegisterHoverProvider(sel extension.Selector, p extension.HoverProvider) extension.Disposable {
	return s.registry.AddHover(sel, p)
}

// RegisterColorProvider implements extension.Host.
func (s *Server) RegisterColorProvider(sel extension.Selector, p extension.ColorProvider) extension.Disposable {
	return s.registry.AddColor(sel, p)
}

// OnDidChangeActiveEditor subscribes to didOpen and
// iconforge/didChangeActiveEditor.
func (s *Server) OnDidChangeActiveEditor(fn func(uri string)) extension.Disposable {
	return s.events.subscribe(s.events.onActive, fn)
}

// OnDidChangeTextDocument subscribes to didChange and didSave with new text.
func (s *Server) OnDidChangeTextDocument(fn func(uri string)) extension.Disposable {
	return s.events.subscribe(s.events.onChange, fn)
}

// Document returns a snapshot of an open document.
func (s *Server) Document(uri string) (*textdoc.Document, bool) {
	doc := s.docs.Get(uri)
	return doc, doc != nil
}

// DecorationsParams is the payload of the iconforge/decorations notification.
// An empty Decorations list clears the document's markers.
type DecorationsParams struct {
	URI         string       `json:"uri"`
	Decorations []Decoration `json:"decorations"`
}

// Decoration is one marker style and the ranges it applies to.
type Decoration struct {
	Color  string  `json:"color"`
	Ranges []Range `json:"ranges"`
}

// SetMarkers sends the marker set for uri. Spans are converted against doc,
// the snapshot they were scanned from, not the document's current text.
func (s *Server) SetMarkers(uri string, doc *textdoc.Document, res decorate.Result) {
	decorations := []Decoration{}
	if doc != nil {
		for _, b := range res {
			d := Decoration{Color: b.Color, Ranges: make([]Range, 0, len(b.Spans))}
			for _, sp := range b.Spans {
				d.Ranges = append(d.Ranges, doc.RangeOf(sp))
			}
			decorations = append(decorations, d)
		}
	}
	s.sendDecorations(uri, decorations)
}

func (s *Server) sendDecorations(uri string, decorations []Decoration) {
	if err := s.sendNotification("iconforge/decorations", DecorationsParams{URI: uri, Decorations: decorations}); err != nil {
		log.Error("server", "send decorations", "error", err)
	}
}

// PublishDiagnostics sends lint findings for doc, stamped with the version
// they were computed from.
func (s *Server) PublishDiagnostics(doc *textdoc.Document, findings []lint.Finding) {
	params := PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     &doc.Version,
		Diagnostics: toDiagnostics(doc, findings),
	}
	if err := s.sendNotification("textDocument/publishDiagnostics", params); err != nil {
		log.Error("server", "publish diagnostics", "error", err)
	}
}
