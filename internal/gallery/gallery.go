// Package gallery renders a catalog overview page: every icon preview, every
// color swatch and every utility snippet.
package gallery

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/preview"
)

const style = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:60rem;padding:0 1rem}
img{vertical-align:middle;border:1px solid #ddd;border-radius:4px}
table{border-collapse:collapse}td,th{border:1px solid #ddd;padding:.25rem .5rem}
.swatch{display:inline-block;width:1em;height:1em;border:1px solid #999;vertical-align:middle}
pre{background:#f6f8fa;padding:.5rem;overflow:auto}`

// Markdown builds the gallery as GitHub-flavored Markdown. Icon previews
// are embedded images, so the output must be rendered with raw HTML and
// data URIs allowed.
func Markdown(cat *catalog.Catalog, opts preview.Options, title string) string {
	var icons, colors, snippets []*catalog.Entry
	for _, e := range cat.Sorted() {
		switch e.Kind {
		case catalog.KindIcon:
			icons = append(icons, e)
		case catalog.KindSnippet:
			snippets = append(snippets, e)
		default:
			colors = append(colors, e)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "%d classes: %d icons, %d colors, %d utilities.\n\n", cat.Len(), len(icons), len(colors), len(snippets))

	if len(icons) > 0 {
		b.WriteString("## Icons\n\n| Preview | Class |\n|---|---|\n")
		for _, e := range icons {
			img := opts.Compose(e, preview.DefaultFill, preview.DefaultBackground)
			fmt.Fprintf(&b, "| ![%s](%s) | `%s` |\n", e.Name, img.DataURI, e.Name)
		}
		b.WriteString("\n")
	}

	if len(colors) > 0 {
		b.WriteString("## Colors\n\n| Swatch | Class | Value |\n|---|---|---|\n")
		for _, e := range colors {
			fmt.Fprintf(&b, "| <span class=\"swatch\" style=\"background:%s\"></span> | `%s` | `%s` |\n",
				html.EscapeString(e.Color), e.Name, e.Color)
		}
		b.WriteString("\n")
	}

	if len(snippets) > 0 {
		b.WriteString("## Utilities\n\n")
		for _, e := range snippets {
			b.WriteString(preview.SnippetMarkdown(e))
			b.WriteString("\n\n")
		}
	}
	return b.String()
}

// Render converts the gallery to a standalone HTML page.
func Render(cat *catalog.Catalog, opts preview.Options, title string) ([]byte, error) {
	converter := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)

	var body bytes.Buffer
	if err := converter.Convert([]byte(Markdown(cat, opts, title)), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&page, "<title>%s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n", html.EscapeString(title), style)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
