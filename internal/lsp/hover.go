package lsp

import "github.com/grindlemire/iconforge/internal/extension"

// HoverParams represents textDocument/hover parameters.
type HoverParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// Hover represents the result of a hover request.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// MarkupKindMarkdown marks content as Markdown.
const MarkupKindMarkdown = "markdown"

// MarkupContent represents markup content for hover.
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

func toHover(h *extension.Hover) *Hover {
	r := h.Range
	return &Hover{
		Contents: MarkupContent{Kind: MarkupKindMarkdown, Value: h.Document.Markdown},
		Range:    &r,
	}
}
