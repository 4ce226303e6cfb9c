// Package classname classifies IconForge class names and finds them in text.
package classname

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/grindlemire/iconforge/internal/textdoc"
)

// Category is the semantic group a class name belongs to, derived from its prefix.
type Category int

const (
	Unknown Category = iota
	Icon
	Color
	Background
	Size
	Modifier
)

// String returns a human-readable name for the Category.
func (c Category) String() string {
	switch c {
	case Icon:
		return "Icon"
	case Color:
		return "Color"
	case Background:
		return "Background"
	case Size:
		return "Size"
	case Modifier:
		return "Modifier"
	default:
		return "Unknown"
	}
}

// Class name prefixes.
const (
	IconPrefix       = "if-"
	StylePrefix      = "is-"
	BackgroundPrefix = "is-bg-"
	SizePrefix       = "is-size-"
	RotatePrefix     = "is-rot-"
	FlipPrefix       = "is-flip-"
)

// rules is evaluated in order; the first matching prefix wins. The specific
// is-* prefixes must come before the generic one.
var rules = []struct {
	prefix   string
	category Category
}{
	{IconPrefix, Icon},
	{BackgroundPrefix, Background},
	{SizePrefix, Size},
	{RotatePrefix, Modifier},
	{FlipPrefix, Modifier},
	{StylePrefix, Color},
}

// Classify maps a class name to its Category.
func Classify(name string) Category {
	for _, r := range rules {
		if strings.HasPrefix(name, r.prefix) {
			return r.category
		}
	}
	return Unknown
}

// Ambiguous reports whether a partially typed Color name could still grow
// into a more specific category: "is-b" is Color now but may become
// "is-bg-red". Names in any other category are never ambiguous.
func Ambiguous(partial string) bool {
	if Classify(partial) != Color {
		return false
	}
	for _, p := range []string{BackgroundPrefix, SizePrefix, RotatePrefix, FlipPrefix} {
		if strings.HasPrefix(p, partial) {
			return true
		}
	}
	return false
}

// Pattern matches a whole IconForge class token in arbitrary text.
var Pattern = regexp.MustCompile(`\b(?:is|if)-[a-zA-Z0-9-]+`)

// Find returns the byte spans of every class token in text, in order.
func Find(text string) []textdoc.Span {
	matches := Pattern.FindAllStringIndex(text, -1)
	spans := make([]textdoc.Span, len(matches))
	for i, m := range matches {
		spans[i] = textdoc.Span{Start: m[0], End: m[1]}
	}
	return spans
}

// Tokens returns every class token in text, in order.
func Tokens(text string) []string {
	return Pattern.FindAllString(text, -1)
}

// At returns the class token in line that contains byte index col, with its span.
// A cursor sitting just after the last character still counts as on the token.
func At(line string, col int) (string, textdoc.Span, bool) {
	for _, s := range Find(line) {
		if col >= s.Start && col <= s.End {
			return line[s.Start:s.End], s, true
		}
	}
	return "", textdoc.Span{}, false
}

// Humanize turns a class name into a display title: "if-arrow-left" -> "Arrow Left".
func Humanize(name string) string {
	for _, p := range []string{IconPrefix, StylePrefix} {
		if strings.HasPrefix(name, p) {
			name = strings.TrimPrefix(name, p)
			break
		}
	}
	words := strings.FieldsFunc(name, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
