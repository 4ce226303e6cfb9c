package lsp

import (
	"github.com/grindlemire/iconforge/internal/lint"
	"github.com/grindlemire/iconforge/internal/textdoc"
)

// DiagnosticSeverity represents the severity of a diagnostic.
type DiagnosticSeverity int

const (
	// DiagnosticSeverityError reports an error.
	DiagnosticSeverityError DiagnosticSeverity = 1
	// DiagnosticSeverityWarning reports a warning.
	DiagnosticSeverityWarning DiagnosticSeverity = 2
	// DiagnosticSeverityInformation reports an information.
	DiagnosticSeverityInformation DiagnosticSeverity = 3
	// DiagnosticSeverityHint reports a hint.
	DiagnosticSeverityHint DiagnosticSeverity = 4
)

// Diagnostic represents a diagnostic, such as an unknown class.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity,omitempty"`
	Code     string             `json:"code,omitempty"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// PublishDiagnosticsParams represents the parameters for publishDiagnostics.
type PublishDiagnosticsParams struct {
	URI         string       `json:"uri"`
	Version     *int         `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func toDiagnostics(doc *textdoc.Document, findings []lint.Finding) []Diagnostic {
	diagnostics := make([]Diagnostic, 0, len(findings))
	for _, f := range findings {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    doc.RangeOf(f.Span),
			Severity: DiagnosticSeverity(f.Severity),
			Code:     f.Code,
			Source:   "iconforge",
			Message:  f.Message,
		})
	}
	return diagnostics
}
