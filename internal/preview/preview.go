// Package preview renders hover documents for catalog entries: a composited
// SVG image for icons, a CSS block for snippets and plain text for swatches.
package preview

import (
	"encoding/base64"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/classname"
)

// Defaults for the composed icon image.
const (
	DefaultSize       = 64
	DefaultPadding    = 8
	DefaultFill       = "currentColor"
	DefaultBackground = "transparent"
)

// Options controls the composed icon image. A zero Padding draws the icon
// edge to edge; a non-positive Size or negative Padding uses the default.
type Options struct {
	Size    int
	Padding int
}

// Defaults is the image layout used when nothing is configured.
var Defaults = Options{Size: DefaultSize, Padding: DefaultPadding}

func (o Options) normalized() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Padding < 0 {
		o.Padding = DefaultPadding
	}
	if o.Padding*2 >= o.Size {
		o.Padding = o.Size / 8
	}
	return o
}

// Document is a renderable hover preview.
type Document struct {
	// Markdown is the hover body. For icons it holds only the embedded image.
	Markdown string
	// Image is set for icon previews.
	Image *Image
}

// Image is a composed, self-contained icon preview.
type Image struct {
	SVG        string
	DataURI    string
	Fill       string
	Background string
}

// Render builds the preview for word using the default options.
func Render(cat *catalog.Catalog, word, line string) (*Document, bool) {
	return Defaults.Render(cat, word, line)
}

// Render builds the preview for word. line is the text of the line holding
// the word; its other classes tint icon previews. It returns false when word
// is not in the catalog.
func (o Options) Render(cat *catalog.Catalog, word, line string) (*Document, bool) {
	e, ok := cat.Lookup(word)
	if !ok {
		return nil, false
	}

	switch e.Kind {
	case catalog.KindIcon:
		fill, bg := siblingColors(cat, line)
		img := o.Compose(e, fill, bg)
		return &Document{
			Markdown: fmt.Sprintf("![%s](%s)", e.Name, img.DataURI),
			Image:    img,
		}, true
	case catalog.KindSnippet:
		return &Document{Markdown: SnippetMarkdown(e)}, true
	default:
		return &Document{Markdown: SwatchMarkdown(e)}, true
	}
}

// siblingColors resolves the icon fill and background from the other
// classes on the line. The last matching class wins.
func siblingColors(cat *catalog.Catalog, line string) (fill, bg string) {
	fill, bg = DefaultFill, DefaultBackground
	for _, tok := range classname.Tokens(line) {
		sib, ok := cat.Lookup(tok)
		if !ok || !sib.HasColor() {
			continue
		}
		switch {
		case strings.HasPrefix(tok, classname.BackgroundPrefix):
			bg = sib.Color
		case classname.Classify(tok) == classname.Color:
			fill = sib.Color
		}
	}
	return fill, bg
}

// Compose layers the icon, drawn in fill, over a square of bg. The icon is
// scaled from its own viewBox into the square minus symmetric padding.
func (o Options) Compose(e *catalog.Entry, fill, bg string) *Image {
	o = o.normalized()
	inner := o.Size - 2*o.Padding
	vb := strconv.FormatFloat(e.ViewBox, 'f', -1, 64)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		o.Size, o.Size, o.Size, o.Size)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="%s"/>`, o.Size, o.Size, attr(bg))
	fmt.Fprintf(&b, `<svg x="%d" y="%d" width="%d" height="%d" viewBox="0 0 %s %s" fill="%s">`,
		o.Padding, o.Padding, inner, inner, vb, vb, attr(fill))
	for _, p := range e.Paths {
		fmt.Fprintf(&b, `<path d="%s"/>`, attr(p))
	}
	b.WriteString(`</svg></svg>`)

	svg := b.String()
	return &Image{
		SVG:        svg,
		DataURI:    "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg)),
		Fill:       fill,
		Background: bg,
	}
}

func attr(s string) string {
	return html.EscapeString(s)
}

// SnippetMarkdown renders a snippet entry as a heading and a CSS code block.
func SnippetMarkdown(e *catalog.Entry) string {
	return fmt.Sprintf("**%s**\n\n```css\n%s\n```", e.Name, strings.TrimRight(e.Snippet, "\n"))
}

// SwatchMarkdown renders a swatch entry's documentation text.
func SwatchMarkdown(e *catalog.Entry) string {
	if doc := e.Doc(); doc != "" {
		return doc
	}
	return fmt.Sprintf("**%s**\n\n`%s`", e.Name, e.Color)
}
