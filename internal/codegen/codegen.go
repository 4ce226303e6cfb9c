// Package codegen emits a Go source file with one constant per catalog class,
// so Go templates (templ, html/template helpers) can reference class names
// without string typos.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/classname"
)

// Generator writes Go source for a catalog.
type Generator struct {
	buf bytes.Buffer

	// Package is the package clause of the generated file.
	Package string
	// Source is recorded in the header comment.
	Source string
	// SkipImports uses format.Source instead of imports.Process (faster for tests)
	SkipImports bool
}

// NewGenerator creates a generator for package pkg.
func NewGenerator(pkg string) *Generator {
	return &Generator{Package: pkg}
}

// group is one const block in the output.
type group struct {
	title    string
	category classname.Category
}

var groups = []group{
	{"Icon classes.", classname.Icon},
	{"Color classes.", classname.Color},
	{"Background classes.", classname.Background},
	{"Size classes.", classname.Size},
	{"Rotation and flip classes.", classname.Modifier},
	{"Other classes.", classname.Unknown},
}

// Generate produces formatted Go source. filename is used for import
// resolution and may be empty.
func (g *Generator) Generate(cat *catalog.Catalog, filename string) ([]byte, error) {
	if !token.IsIdentifier(g.Package) {
		return nil, fmt.Errorf("invalid package name %q", g.Package)
	}
	g.buf.Reset()

	g.writeln("// Code generated by iconforge generate. DO NOT EDIT.")
	if g.Source != "" {
		g.writef("// Source: %s\n", g.Source)
	}
	g.writeln("")
	g.writef("package %s\n\n", g.Package)

	idents := Identifiers(cat.Sorted())
	for _, grp := range groups {
		var members []*catalog.Entry
		for _, e := range cat.Sorted() {
			if e.Category() == grp.category {
				members = append(members, e)
			}
		}
		if len(members) == 0 {
			continue
		}
		g.writef("// %s\n", grp.title)
		g.writeln("const (")
		for _, e := range members {
			g.writef("\t// %s is %s.\n", idents[e.Name], describe(e))
			g.writef("\t%s = %s\n", idents[e.Name], strconv.Quote(e.Name))
		}
		g.writeln(")")
		g.writeln("")
	}

	g.writeln("// All lists every class in display order.")
	g.writeln("var All = []string{")
	for _, e := range cat.Sorted() {
		g.writef("\t%s,\n", idents[e.Name])
	}
	g.writeln("}")
	g.writeln("")

	g.writeln("// Colors maps each colored class to its CSS color.")
	g.writeln("var Colors = map[string]string{")
	for _, e := range cat.Sorted() {
		if e.HasColor() {
			g.writef("\t%s: %s,\n", idents[e.Name], strconv.Quote(e.Color))
		}
	}
	g.writeln("}")

	if g.SkipImports {
		return format.Source(g.buf.Bytes())
	}
	return imports.Process(filename, g.buf.Bytes(), nil)
}

func (g *Generator) writeln(s string) {
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func (g *Generator) writef(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

func describe(e *catalog.Entry) string {
	switch e.Kind {
	case catalog.KindIcon:
		return fmt.Sprintf("the %q icon", classname.Humanize(e.Name))
	case catalog.KindSnippet:
		return fmt.Sprintf("the %s utility", e.Name)
	default:
		return fmt.Sprintf("the %s color (%s)", e.Name, e.Color)
	}
}

// Identifiers maps class names to unique exported Go identifiers:
// "if-arrow-left" -> IfArrowLeft. Collisions get a numeric suffix in
// display order.
func Identifiers(entries []*catalog.Entry) map[string]string {
	out := make(map[string]string, len(entries))
	used := make(map[string]bool, len(entries))
	for _, e := range entries {
		base := Identifier(e.Name)
		id := base
		for n := 2; used[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		used[id] = true
		out[e.Name] = id
	}
	return out
}

// Identifier converts one class name to an exported Go identifier.
func Identifier(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	id := b.String()
	if id == "" || !unicode.IsLetter([]rune(id)[0]) {
		id = "C" + id
	}
	return id
}
