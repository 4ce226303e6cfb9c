// Package catalog loads the IconForge class catalog from its JSON data file.
//
// The catalog is read once at activation and is immutable afterwards. Each
// entry is decided into one of three variants at load time (icon, snippet or
// swatch) so callers switch on Kind instead of probing optional fields.
package catalog

import "github.com/grindlemire/iconforge/internal/classname"

// DefaultViewBox is the icon coordinate-space size used when an icon entry
// does not declare one.
const DefaultViewBox = 1024

// Kind identifies which variant an Entry is.
type Kind int

const (
	// KindSwatch is a color or documentation-only entry.
	KindSwatch Kind = iota
	// KindIcon is an SVG icon with path data.
	KindIcon
	// KindSnippet is a CSS utility with a rule body.
	KindSnippet
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindIcon:
		return "Icon"
	case KindSnippet:
		return "Snippet"
	default:
		return "Swatch"
	}
}

// Entry is one named utility class.
type Entry struct {
	Name string
	Kind Kind

	// Color is set on any variant that renders a swatch and takes part in
	// decoration highlighting.
	Color string

	Description   string
	Documentation string

	// Icon variant.
	Paths   []string
	ViewBox float64

	// Snippet variant.
	Snippet string
}

// Category returns the entry's class-name category.
func (e *Entry) Category() classname.Category {
	return classname.Classify(e.Name)
}

// HasColor reports whether the entry carries a swatch color.
func (e *Entry) HasColor() bool {
	return e.Color != ""
}

// Doc returns the entry's long-form text, preferring documentation over description.
func (e *Entry) Doc() string {
	if e.Documentation != "" {
		return e.Documentation
	}
	return e.Description
}

// Record is the on-disk shape of an entry across every revision of the data file.
type Record struct {
	Name          string   `json:"name"`
	Paths         []string `json:"paths,omitempty"`
	ViewBox       *float64 `json:"viewBox,omitempty"`
	Snippet       string   `json:"snippet,omitempty"`
	Color         string   `json:"color,omitempty"`
	Description   string   `json:"description,omitempty"`
	Documentation string   `json:"documentation,omitempty"`
}

// Record returns the on-disk representation of e.
func (e *Entry) Record() Record {
	r := Record{
		Name:          e.Name,
		Snippet:       e.Snippet,
		Color:         e.Color,
		Description:   e.Description,
		Documentation: e.Documentation,
	}
	if e.Kind == KindIcon {
		vb := e.ViewBox
		r.Paths = e.Paths
		r.ViewBox = &vb
	}
	return r
}
