// Package lint reports suspicious IconForge classes inside class attributes.
package lint

import (
	"fmt"
	"regexp"

	"github.com/grindlemire/iconforge/internal/catalog"
	"github.com/grindlemire/iconforge/internal/classname"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

// Severity mirrors the LSP diagnostic severities.
type Severity int

const (
	SeverityError       Severity = 1
	SeverityWarning     Severity = 2
	SeverityInformation Severity = 3
	SeverityHint        Severity = 4
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Finding codes.
const (
	CodeUnknownClass = "unknown-class"
	CodeDuplicate    = "duplicate-category"
)

// Finding is one problem in a document.
type Finding struct {
	Span     textdoc.Span
	Severity Severity
	Code     string
	Message  string
}

// attrValue matches a complete class or className attribute value in any of
// the three quote styles.
var attrValue = regexp.MustCompile("class(?:Name)?\\s*=\\s*(?:\"([^\"]*)\"|'([^']*)'|`([^`]*)`)")

// Check reports unknown classes and repeated single-valued categories (two
// icons, two colors) inside class attribute values.
func Check(text string, cat *catalog.Catalog) []Finding {
	var findings []Finding
	for _, m := range attrValue.FindAllStringSubmatchIndex(text, -1) {
		start, end := valueBounds(m)
		if start < 0 {
			continue
		}
		findings = append(findings, checkValue(text, start, end, cat)...)
	}
	return findings
}

func valueBounds(m []int) (int, int) {
	for g := 1; g <= 3; g++ {
		if m[2*g] >= 0 {
			return m[2*g], m[2*g+1]
		}
	}
	return -1, -1
}

func checkValue(text string, start, end int, cat *catalog.Catalog) []Finding {
	var findings []Finding
	first := make(map[classname.Category]string)
	for _, s := range classname.Find(text[start:end]) {
		s = textdoc.Span{Start: start + s.Start, End: start + s.End}
		name := text[s.Start:s.End]

		if _, ok := cat.Lookup(name); !ok {
			findings = append(findings, Finding{
				Span:     s,
				Severity: SeverityWarning,
				Code:     CodeUnknownClass,
				Message:  fmt.Sprintf("unknown IconForge class %q", name),
			})
			continue
		}

		c := classname.Classify(name)
		if c != classname.Icon && c != classname.Color && c != classname.Background {
			continue
		}
		if prev, ok := first[c]; ok {
			findings = append(findings, Finding{
				Span:     s,
				Severity: SeverityHint,
				Code:     CodeDuplicate,
				Message:  fmt.Sprintf("%s overrides %s: only one %s class applies", name, prev, c),
			})
			continue
		}
		first[c] = name
	}
	return findings
}
