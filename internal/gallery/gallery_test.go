package gallery

import (
	"strings"
	"testing"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/preview"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Parse([]byte(`[
		{"name": "if-home", "paths": ["M0 0h10v10H0z"]},
		{"name": "is-red", "color": "#ff0000"},
		{"name": "is-size-2", "snippet": ".is-size-2 { font-size: 2em; }"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testCatalog(t), preview.Defaults, "Classes")

	type tc struct {
		want string
	}

	tests := map[string]tc{
		"title":      {want: "# Classes"},
		"summary":    {want: "3 classes: 1 icons, 1 colors, 1 utilities."},
		"icon image": {want: "![if-home](data:image/svg+xml;base64,"},
		"swatch":     {want: `style="background:#ff0000"`},
		"snippet":    {want: "```css\n.is-size-2 { font-size: 2em; }\n```"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if !strings.Contains(md, tt.want) {
				t.Errorf("markdown missing %q:\n%s", tt.want, md)
			}
		})
	}
}

func TestRender(t *testing.T) {
	page, err := Render(testCatalog(t), preview.Options{Size: 32, Padding: 4}, "Icons & colors")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := string(page)

	for _, want := range []string{
		"<!doctype html>",
		"<title>Icons &amp; colors</title>",
		`<img src="data:image/svg+xml;base64,`,
		"<table>",
		`<span class="swatch" style="background:#ff0000"></span>`,
		`<code class="language-css">`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	page, err := Render(catalog.New(nil), preview.Defaults, "Empty")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(string(page), "<table>") {
		t.Error("empty catalog should have no tables")
	}
}
