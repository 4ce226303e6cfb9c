// Package suggest ranks catalog entries as completion candidates for the
// class attribute value being typed.
package suggest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/classname"
)

// classAttr matches an opened, unclosed class or className attribute value
// at the end of the text before the cursor. Group 1 is the typed value.
var classAttr = regexp.MustCompile("class(?:Name)?\\s*=\\s*[\"'`]([^\"'`]*)$")

// Detail labels shown next to a suggestion.
const (
	DetailIcon    = "SVG Icon"
	DetailSnippet = "CSS Utility"
	DetailColor   = "Color Utility"
)

// Suggestion is a ranked completion candidate.
type Suggestion struct {
	Label         string
	Detail        string
	Documentation string
	// InsertText overrides Label when non-empty.
	InsertText string
	// SortText orders suggestions lexicographically in the editor.
	SortText string
	Category classname.Category
	Kind     catalog.Kind
	Color    string
	Bucket   int
}

// Typed is the class attribute value split at the cursor.
type Typed struct {
	Completed []string
	Partial   string
}

// ParseAttribute extracts the typed class attribute value from the text
// before the cursor. It returns false when the cursor is not inside an
// opened, unclosed class attribute string.
func ParseAttribute(linePrefix string) (Typed, bool) {
	m := classAttr.FindStringSubmatch(linePrefix)
	if m == nil {
		return Typed{}, false
	}
	value := m[1]
	fields := strings.Fields(value)
	if len(fields) == 0 || endsInSpace(value) {
		return Typed{Completed: fields}, true
	}
	return Typed{Completed: fields[:len(fields)-1], Partial: fields[len(fields)-1]}, true
}

func endsInSpace(s string) bool {
	r, size := utf8.DecodeLastRuneInString(s)
	return size > 0 && unicode.IsSpace(r)
}

// present records which categories the completed tokens already cover.
type present struct {
	icon, color, background, size bool
}

func presentIn(tokens []string) present {
	var p present
	for _, tok := range tokens {
		switch classname.Classify(tok) {
		case classname.Icon:
			p.icon = true
		case classname.Color:
			p.color = true
		case classname.Background:
			p.background = true
		case classname.Size:
			p.size = true
		}
	}
	return p
}

// bucket ranks a category: missing icon first, then missing color or
// background, then missing size, then everything else.
func (p present) bucket(c classname.Category) int {
	switch {
	case c == classname.Icon && !p.icon:
		return 0
	case c == classname.Color && !p.color, c == classname.Background && !p.background:
		return 1
	case c == classname.Size && !p.size:
		return 2
	default:
		return 3
	}
}

// narrow returns the category the partial token restricts candidates to, if
// it unambiguously names one.
func narrow(partial string) (classname.Category, bool) {
	c := classname.Classify(partial)
	switch c {
	case classname.Unknown:
		return c, false
	case classname.Color:
		return c, !classname.Ambiguous(partial)
	default:
		return c, true
	}
}

// Suggest returns ranked suggestions for the text before the cursor. The
// boolean is false when the cursor is not inside a class attribute value,
// meaning completion does not apply here.
func Suggest(cat *catalog.Catalog, linePrefix string) ([]Suggestion, bool) {
	typed, ok := ParseAttribute(linePrefix)
	if !ok {
		return nil, false
	}
	return Rank(cat, typed), true
}

// Rank orders the catalog for an already parsed attribute value.
func Rank(cat *catalog.Catalog, typed Typed) []Suggestion {
	have := presentIn(typed.Completed)
	only, narrowed := narrow(typed.Partial)

	var out []Suggestion
	for i, e := range cat.Sorted() {
		c := e.Category()
		if narrowed && c != only {
			continue
		}
		b := have.bucket(c)
		out = append(out, Suggestion{
			Label:         e.Name,
			Detail:        detail(e),
			Documentation: documentation(e),
			InsertText:    insertText(e),
			SortText:      fmt.Sprintf("%d-%06d", b, i),
			Category:      c,
			Kind:          e.Kind,
			Color:         e.Color,
			Bucket:        b,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Bucket < out[j].Bucket
	})
	return out
}

func detail(e *catalog.Entry) string {
	switch {
	case e.Kind == catalog.KindIcon:
		return DetailIcon
	case e.HasColor():
		return DetailColor
	default:
		return DetailSnippet
	}
}

func documentation(e *catalog.Entry) string {
	switch e.Kind {
	case catalog.KindIcon:
		return classname.Humanize(e.Name)
	case catalog.KindSnippet:
		return e.Snippet
	default:
		return e.Doc()
	}
}

// insertText guarantees colored entries are inserted with the style prefix,
// even when the data file stores the bare color name.
func insertText(e *catalog.Entry) string {
	if e.Kind == catalog.KindIcon || !e.HasColor() {
		return ""
	}
	if strings.HasPrefix(e.Name, classname.StylePrefix) {
		return e.Name
	}
	return classname.StylePrefix + e.Name
}
