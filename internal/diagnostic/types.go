package diagnostic

import (
	"fmt"
	"go/token"
	"strings"
)

//go:generate go tool stringer -type=Severity -linecomment -output=severity_string.go

// Diagnostics holds all diagnostic information from resolution.
type Diagnostics struct {
	Errors      []Diagnostic
	Warnings    []Diagnostic
	Suggestions []Diagnostic
}

// Diagnostic represents a single validation issue.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// TypeName identifies which type this relates to (if any).
	TypeName string
	// FieldPath identifies which field this relates to (if any).
	FieldPath string
	// Pos is the raw position of the offending declaration.
	Pos token.Pos
	// Position is Pos resolved against its file set.
	Position token.Position
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeveritySuggestion Severity = iota // suggestion
	SeverityWarning                    // warning
	SeverityError                      // error
)

// Reporter receives diagnostics as they are produced.
type Reporter interface {
	Report(d Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d Diagnostic)

// Report calls f(d).
func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

// Discard is a Reporter that drops everything.
var Discard Reporter = ReporterFunc(func(Diagnostic) {})

// Multi returns a Reporter that forwards every diagnostic to each of rs.
// Nil reporters are skipped.
func Multi(rs ...Reporter) Reporter {
	return ReporterFunc(func(d Diagnostic) {
		for _, r := range rs {
			if r != nil {
				r.Report(d)
			}
		}
	})
}

// Report files d under its severity.
func (d *Diagnostics) Report(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Suggestions = append(d.Suggestions, diag)
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Suggestions))
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)
	out = append(out, d.Suggestions...)

	return out
}

// WithCode returns the diagnostics of every severity carrying code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.TypeName != "" && d.FieldPath == "" {
		prefix = append(prefix, "["+d.TypeName+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Line formats the diagnostic the way compilers do: position, severity and
// message, followed by any suggestions on indented lines.
func (d Diagnostic) Line() string {
	var sb strings.Builder

	if d.Position.IsValid() {
		sb.WriteString(d.Position.String())
		sb.WriteString(": ")
	}

	sb.WriteString(d.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(d.String())

	for _, s := range d.Suggestions {
		sb.WriteString("\n\t")
		sb.WriteString(s)
	}

	return sb.String()
}
