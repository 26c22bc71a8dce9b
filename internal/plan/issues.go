package plan

import (
	"fmt"

	"clonegen/internal/analyze"
	"clonegen/internal/diagnostic"
)

// Diagnostic codes.
const (
	CodeUnclassified     = "unclassified"
	CodeUnknownMarker    = "unknown-marker"
	CodeMarkerConflict   = "marker-conflict"
	CodeReadOnlyOwned    = "read-only-owned"
	CodeNonTrivialOwned  = "non-trivial-owned"
	CodeUncloneableOwned = "uncloneable-owned"
	CodeNotAStruct       = "not-a-struct"
	CodeGenericType      = "generic-type"
	CodeBadReturns       = "bad-returns"
	CodeUnknownOption    = "unknown-option"
	CodeMultipleBases    = "multiple-bases"
	CodeBaseNotCloneable = "base-not-cloneable"
	CodeSlicedClone      = "sliced-clone"
	CodeMethodConflict   = "method-conflict"
)

// issues collects the diagnostics of one type and forwards them to the plan
// and to the injected reporter.
type issues struct {
	r        *Resolver
	desc     *analyze.TypeDescriptor
	stringer *analyze.TypeStringer
	diag     diagnostic.Diagnostics
}

func (r *Resolver) newIssues(desc *analyze.TypeDescriptor) *issues {
	return &issues{
		r:        r,
		desc:     desc,
		stringer: analyze.NewTypeStringer(desc.Named.Obj().Pkg()),
	}
}

func (is *issues) report(d diagnostic.Diagnostic) {
	d.TypeName = is.desc.ID.Name

	is.diag.Report(d)
	is.r.plan.Diagnostics.Report(d)
	is.r.reporter.Report(d)
}

// typeIssue reports an issue located at the type declaration.
func (is *issues) typeIssue(sev diagnostic.Severity, code, format string, args ...any) {
	is.report(diagnostic.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Pos:      is.desc.Pos,
		Position: is.desc.Position,
	})
}

// fieldIssue reports an issue located at a field.
func (is *issues) fieldIssue(
	f *analyze.FieldDescriptor,
	sev diagnostic.Severity,
	code string,
	suggestions []string,
	format string,
	args ...any,
) {
	is.report(diagnostic.Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     fmt.Sprintf(format, args...),
		FieldPath:   is.stringer.FieldPath(is.desc.ID.Name, f.Name),
		Pos:         f.Pos,
		Position:    f.Position,
		Suggestions: suggestions,
	})
}
