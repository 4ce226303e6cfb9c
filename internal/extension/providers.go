package extension

import (
	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/classname"
	"github.com/grindlemire/iconforge/internal/csscolor"
	"github.com/grindlemire/iconforge/internal/decorate"
	"github.com/grindlemire/iconforge/internal/preview"
	"github.com/grindlemire/iconforge/internal/suggest"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

// Completion is a ranked suggestion list and the range the chosen item
// replaces (the partial class token before the cursor).
type Completion struct {
	Items []suggest.Suggestion
	Range textdoc.Range
}

// CompletionProvider produces suggestions at a cursor position.
type CompletionProvider interface {
	Complete(doc *textdoc.Document, pos textdoc.Position) (*Completion, bool)
}

// Hover is a preview anchored to the hovered class token.
type Hover struct {
	Name     string
	Document *preview.Document
	Range    textdoc.Range
}

// HoverProvider produces a preview at a cursor position.
type HoverProvider interface {
	Hover(doc *textdoc.Document, pos textdoc.Position) (*Hover, bool)
}

// ColorInfo is one colored class occurrence.
type ColorInfo struct {
	Name  string
	Value string
	Color csscolor.RGBA
	Range textdoc.Range
}

// ColorProvider lists colored class occurrences and alternative color
// spellings.
type ColorProvider interface {
	Colors(doc *textdoc.Document) []ColorInfo
	Presentations(c csscolor.RGBA) []string
}

type completer struct {
	cat *catalog.Catalog
}

func (c completer) Complete(doc *textdoc.Document, pos textdoc.Position) (*Completion, bool) {
	prefix := doc.LinePrefix(pos)
	typed, ok := suggest.ParseAttribute(prefix)
	if !ok {
		return nil, false
	}
	start := textdoc.ByteToCharacter(prefix, len(prefix)-len(typed.Partial))
	return &Completion{
		Items: suggest.Rank(c.cat, typed),
		Range: textdoc.Range{
			Start: textdoc.Position{Line: pos.Line, Character: start},
			End:   pos,
		},
	}, true
}

type hoverer struct {
	cat  *catalog.Catalog
	opts preview.Options
}

func (h hoverer) Hover(doc *textdoc.Document, pos textdoc.Position) (*Hover, bool) {
	line := doc.LineText(pos.Line)
	word, span, ok := classname.At(line, textdoc.CharacterToByte(line, pos.Character))
	if !ok {
		return nil, false
	}
	rendered, ok := h.opts.Render(h.cat, word, line)
	if !ok {
		return nil, false
	}
	return &Hover{
		Name:     word,
		Document: rendered,
		Range: textdoc.Range{
			Start: textdoc.Position{Line: pos.Line, Character: textdoc.ByteToCharacter(line, span.Start)},
			End:   textdoc.Position{Line: pos.Line, Character: textdoc.ByteToCharacter(line, span.End)},
		},
	}, true
}

type colorer struct {
	cat *catalog.Catalog
}

// Colors skips entries whose color is not a concrete CSS color (currentColor,
// var(--x)); those still get markers but cannot be shown as swatches.
func (c colorer) Colors(doc *textdoc.Document) []ColorInfo {
	var infos []ColorInfo
	for _, b := range decorate.Scan(doc.Text, c.cat) {
		rgba, ok := csscolor.Parse(b.Color)
		if !ok {
			continue
		}
		for _, s := range b.Spans {
			infos = append(infos, ColorInfo{
				Name:  doc.Text[s.Start:s.End],
				Value: b.Color,
				Color: rgba,
				Range: doc.RangeOf(s),
			})
		}
	}
	return infos
}

func (colorer) Presentations(c csscolor.RGBA) []string {
	return c.Presentations()
}
