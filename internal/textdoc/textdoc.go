// Package textdoc holds the text model shared by the language server and the
// editor-independent feature code: documents, positions and offset mapping.
//
// Positions follow LSP: 0-indexed lines and characters counted in UTF-16
// code units. Offsets are byte offsets into the document text.
package textdoc

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// Document is an open text document.
type Document struct {
	URI        string
	LanguageID string
	Version    int
	Text       string
}

// Position is a 0-indexed line and UTF-16 character in a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a span in a document.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location is a range in a specific document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// Span is a half-open byte range [Start, End) in a document's text.
type Span struct {
	Start int
	End   int
}

// LineText returns the text of the given 0-indexed line without its line
// terminator. Out-of-range lines return "".
func (d *Document) LineText(line int) string {
	return LineText(d.Text, line)
}

// LinePrefix returns the text of pos's line up to pos.
func (d *Document) LinePrefix(pos Position) string {
	text := d.LineText(pos.Line)
	return text[:CharacterToByte(text, pos.Character)]
}

// OffsetAt converts a position to a byte offset.
func (d *Document) OffsetAt(pos Position) int {
	return PositionToOffset(d.Text, pos)
}

// PositionAt converts a byte offset to a position.
func (d *Document) PositionAt(offset int) Position {
	return OffsetToPosition(d.Text, offset)
}

// RangeOf converts a byte span to a range.
func (d *Document) RangeOf(s Span) Range {
	return Range{Start: d.PositionAt(s.Start), End: d.PositionAt(s.End)}
}

// LineText returns line n of content without its terminator.
func LineText(content string, n int) string {
	if n < 0 {
		return ""
	}
	for i := 0; i < n; i++ {
		idx := strings.IndexByte(content, '\n')
		if idx == -1 {
			return ""
		}
		content = content[idx+1:]
	}
	if idx := strings.IndexByte(content, '\n'); idx != -1 {
		content = content[:idx]
	}
	return strings.TrimSuffix(content, "\r")
}

// CharacterToByte converts a UTF-16 character index within line to a byte
// index, clamped to the line length.
func CharacterToByte(line string, character int) int {
	units := 0
	for i, r := range line {
		if units >= character {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(line)
}

// ByteToCharacter converts a byte index within line to a UTF-16 character index.
func ByteToCharacter(line string, b int) int {
	if b > len(line) {
		b = len(line)
	}
	units := 0
	for _, r := range line[:b] {
		units += utf16.RuneLen(r)
	}
	return units
}

// PositionToOffset converts a Position to a byte offset in content.
// Positions past the end of a line clamp to the line end; lines past the end
// of content clamp to len(content).
func PositionToOffset(content string, pos Position) int {
	offset := 0
	for line := 0; line < pos.Line; line++ {
		idx := strings.IndexByte(content[offset:], '\n')
		if idx == -1 {
			return len(content)
		}
		offset += idx + 1
	}
	end := strings.IndexByte(content[offset:], '\n')
	if end == -1 {
		end = len(content) - offset
	}
	lineText := strings.TrimSuffix(content[offset:offset+end], "\r")
	return offset + CharacterToByte(lineText, pos.Character)
}

// OffsetToPosition converts a byte offset to a Position.
func OffsetToPosition(content string, offset int) Position {
	if offset > len(content) {
		offset = len(content)
	}
	if offset < 0 {
		offset = 0
	}
	line := strings.Count(content[:offset], "\n")
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	segment := content[lineStart:offset]
	if !utf8.ValidString(segment) {
		return Position{Line: line, Character: len(segment)}
	}
	return Position{Line: line, Character: ByteToCharacter(segment, len(segment))}
}
