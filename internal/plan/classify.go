package plan

import (
	"fmt"

	"clonegen/internal/analyze"
	"clonegen/internal/diagnostic"
	"clonegen/internal/match"
)

var markers = []string{analyze.MarkerChild, analyze.MarkerReference}

// classify assigns a clone kind to every direct field of desc. Inherited
// fields are left to the base type's own classification. Fields without a
// marker are reported and resolved according to the unclassified policy, so
// no field comes out unclassified.
func (r *Resolver) classify(desc *analyze.TypeDescriptor, is *issues) []ClassifiedField {
	out := make([]ClassifiedField, 0, len(desc.Fields))

	for i := range desc.Fields {
		f := &desc.Fields[i]
		if desc.Base != nil && f.Name == desc.BaseField {
			continue
		}

		cf := ClassifiedField{
			Field: f,
			Kind:  r.classifyField(f, is),
		}

		if cf.Kind == analyze.KindUnclassified {
			cf.Kind = analyze.KindShared
			cf.Defaulted = true
		}

		out = append(out, cf)
	}

	return out
}

func (r *Resolver) classifyField(f *analyze.FieldDescriptor, is *issues) analyze.Kind {
	if f.ConfigMarker != "" && f.Marker != f.ConfigMarker {
		is.fieldIssue(f, diagnostic.SeverityWarning, CodeMarkerConflict, nil,
			"tag marker %q overrides configured marker %q", f.Marker, f.ConfigMarker)
	}

	switch f.Marker {
	case analyze.MarkerChild:
		return analyze.KindOwned
	case analyze.MarkerReference:
		return analyze.KindShared
	case "":
	default:
		var suggestions []string
		if hint := match.DidYouMean(f.Marker, markers); hint != "" {
			suggestions = append(suggestions, hint)
		}

		is.fieldIssue(f, diagnostic.SeverityWarning, CodeUnknownMarker, suggestions,
			"unknown clone marker %q; expected %q or %q",
			f.Marker, analyze.MarkerChild, analyze.MarkerReference)
	}

	if !f.HoldsRefs {
		return analyze.KindUnmanaged
	}

	r.reportUnclassified(f, is)

	return analyze.KindUnclassified
}

// reportUnclassified files the advisory for an unmarked field. A field whose
// type is cloneable is the more likely candidate for an owned marker, so it is
// raised to a warning.
func (r *Resolver) reportUnclassified(f *analyze.FieldDescriptor, is *issues) {
	sev := diagnostic.SeveritySuggestion
	if _, _, err := r.capability(f.Type, is.stringer); err == nil {
		sev = diagnostic.SeverityWarning
	}

	if r.config.Unclassified == PolicyError {
		sev = diagnostic.SeverityError
	}

	suggestions := []string{
		fmt.Sprintf("tag it `%s:%q` if %s owns the value", r.config.Tag, analyze.MarkerChild, is.desc.ID.Name),
		fmt.Sprintf("tag it `%s:%q` if the value is shared", r.config.Tag, analyze.MarkerReference),
	}

	is.fieldIssue(f, sev, CodeUnclassified, suggestions,
		"field of type %s has no clone marker and is copied as a shared reference",
		is.stringer.TypeString(f.Type))
}
