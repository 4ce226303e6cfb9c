package lsp

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/grindlemire/iconforge/internal/csscolor"
	"github.com/grindlemire/iconforge/internal/extension"
)

// DocumentColorParams represents textDocument/documentColor parameters.
type DocumentColorParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// Color is an RGBA color with components in [0, 1].
type Color struct {
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
	Alpha float64 `json:"alpha"`
}

// ColorInformation is a colored range in a document.
type ColorInformation struct {
	Range Range `json:"range"`
	Color Color `json:"color"`
}

// ColorPresentationParams represents textDocument/colorPresentation parameters.
type ColorPresentationParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Color        Color                  `json:"color"`
	Range        Range                  `json:"range"`
}

// ColorPresentation is one way to write a color. Labels are informational:
// the class name in the document is never rewritten, so no edit is attached.
type ColorPresentation struct {
	Label string `json:"label"`
}

func toColor(c csscolor.RGBA) Color {
	k := c.Clamped()
	return Color{Red: k.R, Green: k.G, Blue: k.B, Alpha: c.A}
}

func fromColor(c Color) csscolor.RGBA {
	return csscolor.RGBA{Color: colorful.Color{R: c.Red, G: c.Green, B: c.Blue}, A: c.Alpha}
}

func toColorInformation(infos []extension.ColorInfo) []ColorInformation {
	out := make([]ColorInformation, 0, len(infos))
	for _, info := range infos {
		out = append(out, ColorInformation{Range: info.Range, Color: toColor(info.Color)})
	}
	return out
}

func toPresentations(labels []string) []ColorPresentation {
	out := make([]ColorPresentation, 0, len(labels))
	for _, l := range labels {
		out = append(out, ColorPresentation{Label: l})
	}
	return out
}
