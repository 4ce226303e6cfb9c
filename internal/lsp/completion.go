package lsp

import (
	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/extension"
	"github.com/grindlemire/iconforge/internal/suggest"
)

// CompletionParams represents textDocument/completion parameters.
type CompletionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
	Context      *CompletionContext     `json:"context,omitempty"`
}

// CompletionContext contains additional information about the context.
type CompletionContext struct {
	TriggerKind      int    `json:"triggerKind"`
	TriggerCharacter string `json:"triggerCharacter,omitempty"`
}

// CompletionList represents a list of completion items.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// CompletionItem represents a completion suggestion.
type CompletionItem struct {
	Label         string             `json:"label"`
	Kind          CompletionItemKind `json:"kind,omitempty"`
	Detail        string             `json:"detail,omitempty"`
	Documentation *MarkupContent     `json:"documentation,omitempty"`
	SortText      string             `json:"sortText,omitempty"`
	FilterText    string             `json:"filterText,omitempty"`
	TextEdit      *TextEdit          `json:"textEdit,omitempty"`
}

// TextEdit replaces a range with new text.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// CompletionItemKind represents the kind of completion item.
type CompletionItemKind int

const (
	CompletionItemKindText     CompletionItemKind = 1
	CompletionItemKindVariable CompletionItemKind = 6
	CompletionItemKindProperty CompletionItemKind = 10
	CompletionItemKindValue    CompletionItemKind = 12
	CompletionItemKindSnippet  CompletionItemKind = 15
	CompletionItemKindColor    CompletionItemKind = 16
)

// toCompletionList converts ranked suggestions to the wire format. Colored
// entries use the Color kind with the color value as documentation, which
// clients render as a swatch.
func toCompletionList(c *extension.Completion) *CompletionList {
	list := &CompletionList{Items: make([]CompletionItem, 0, len(c.Items))}
	for _, s := range c.Items {
		text := s.InsertText
		if text == "" {
			text = s.Label
		}
		item := CompletionItem{
			Label:      s.Label,
			Kind:       completionKind(s),
			Detail:     s.Detail,
			SortText:   s.SortText,
			FilterText: text,
			TextEdit:   &TextEdit{Range: c.Range, NewText: text},
		}
		if s.Documentation != "" {
			item.Documentation = &MarkupContent{Kind: MarkupKindMarkdown, Value: s.Documentation}
		}
		list.Items = append(list.Items, item)
	}
	return list
}

func completionKind(s suggest.Suggestion) CompletionItemKind {
	switch {
	case s.Kind == catalog.KindIcon:
		return CompletionItemKindVariable
	case s.Color != "":
		return CompletionItemKindColor
	default:
		return CompletionItemKindValue
	}
}
