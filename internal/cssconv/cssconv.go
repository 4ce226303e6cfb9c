// Package cssconv converts between utility stylesheets and catalog records.
//
// CSS to records: every ".name { ... }" rule becomes a snippet entry. A rule
// whose animation refers to a @keyframes block in the same sheet gets that
// block prepended to its snippet. A color or background-color declaration
// is copied to the entry's color.
//
// Records to CSS: snippets are emitted verbatim, separated by blank lines.
package cssconv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/grindlemire/iconforge/internal/catalog"
)

var (
	keyframesStart = regexp.MustCompile(`@keyframes\s+([^\s{]+)\s*\{`)
	classRule      = regexp.MustCompile(`\.([^\s{.,:>]+)\s*\{\s*([^}]+?)\s*\}`)
	animationName  = regexp.MustCompile(`animation(?:-name)?\s*:\s*([^\s;,]+)`)
	colorDecl      = regexp.MustCompile(`(?i)(?:^|[;\s])(?:background-)?color\s*:\s*([^;]+)`)
	commentBlock   = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// keyframes extracts every @keyframes block by brace matching and returns the
// blocks by name plus the sheet with those blocks removed.
func keyframes(css string) (map[string]string, string) {
	blocks := make(map[string]string)
	var rest strings.Builder
	pos := 0
	for {
		loc := keyframesStart.FindStringSubmatchIndex(css[pos:])
		if loc == nil {
			break
		}
		start := pos + loc[0]
		name := css[pos+loc[2] : pos+loc[3]]
		end := matchBrace(css, pos+loc[1]-1)
		if end < 0 {
			break
		}
		blocks[name] = strings.TrimSpace(css[start : end+1])
		rest.WriteString(css[pos:start])
		pos = end + 1
	}
	rest.WriteString(css[pos:])
	return blocks, rest.String()
}

// matchBrace returns the index of the brace closing the one at open, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// ParseCSS converts a stylesheet to catalog records in source order.
func ParseCSS(css string) []catalog.Record {
	css = commentBlock.ReplaceAllString(css, "")
	frames, rules := keyframes(css)

	var out []catalog.Record
	for _, m := range classRule.FindAllStringSubmatch(rules, -1) {
		name, body := m[1], m[2]

		if am := animationName.FindStringSubmatch(body); am != nil {
			if kf, ok := frames[am[1]]; ok {
				out = append(out, catalog.Record{
					Name:    name,
					Snippet: kf + "\n\n" + strings.TrimSpace(m[0]),
				})
				continue
			}
		}

		r := catalog.Record{Name: name, Snippet: formatRule(name, body)}
		if cm := colorDecl.FindStringSubmatch(body); cm != nil {
			r.Color = strings.TrimSpace(cm[1])
		}
		out = append(out, r)
	}
	return out
}

// formatRule rewrites a rule body with one declaration per line.
func formatRule(name, body string) string {
	var decls []string
	for _, d := range strings.Split(body, ";") {
		if d = strings.TrimSpace(d); d != "" {
			decls = append(decls, d+";")
		}
	}
	return fmt.Sprintf(".%s {\n  %s\n}", name, strings.Join(decls, "\n  "))
}

// sourceRecord is a record in either the catalog shape or the older
// glyph shape with a "content" code point.
type sourceRecord struct {
	catalog.Record
	Content string `json:"content,omitempty"`
}

// animation is a value in the name-keyed map shape.
type animation struct {
	Keyframes string `json:"keyframes"`
	Class     string `json:"class"`
}

// ToCSS converts catalog JSON to a stylesheet. Accepted shapes: a bare array
// of records, an object with a "classes" array, or an object mapping class
// names to a CSS rule string or a {keyframes, class} pair.
func ToCSS(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return "", fmt.Errorf("input is not valid JSON")
	}

	var blocks []string
	switch {
	case len(data) > 0 && data[0] == '[':
		var recs []sourceRecord
		if err := json.Unmarshal(data, &recs); err != nil {
			return "", fmt.Errorf("decode records: %w", err)
		}
		blocks = recordBlocks(recs)
	case len(data) > 0 && data[0] == '{':
		var wrapped struct {
			Classes *[]sourceRecord `json:"classes"`
		}
		if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Classes != nil {
			blocks = recordBlocks(*wrapped.Classes)
			break
		}
		var byName map[string]json.RawMessage
		if err := json.Unmarshal(data, &byName); err != nil {
			return "", fmt.Errorf("decode class map: %w", err)
		}
		blocks = mapBlocks(byName)
	default:
		return "", fmt.Errorf("input must be a JSON array or object")
	}
	return strings.Join(blocks, "\n\n"), nil
}

func recordBlocks(recs []sourceRecord) []string {
	var blocks []string
	for _, r := range recs {
		switch {
		case r.Snippet != "":
			blocks = append(blocks, r.Snippet)
		case r.Content != "" && r.Name != "":
			blocks = append(blocks, fmt.Sprintf(".%s:before {\n  content: \"%s\";\n}", r.Name, r.Content))
		}
	}
	return blocks
}

// mapBlocks emits the name-keyed shape in name order so output is stable.
func mapBlocks(byName map[string]json.RawMessage) []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)

	var blocks []string
	for _, n := range names {
		raw := byName[n]
		var rule string
		if err := json.Unmarshal(raw, &rule); err == nil {
			blocks = append(blocks, rule)
			continue
		}
		var anim animation
		if err := json.Unmarshal(raw, &anim); err == nil && anim.Class != "" {
			if anim.Keyframes != "" {
				blocks = append(blocks, anim.Keyframes)
			}
			blocks = append(blocks, anim.Class)
		}
	}
	return blocks
}

// RoundTrip converts catalog JSON to CSS and parses that CSS back into
// records, normalizing snippets to the converter's formatting.
func RoundTrip(data []byte) (string, []catalog.Record, error) {
	css, err := ToCSS(data)
	if err != nil {
		return "", nil, err
	}
	return css, ParseCSS(css), nil
}
