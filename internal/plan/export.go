package plan

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"clonegen/internal/analyze"
)

// Report explains, per type, how every field is going to be copied.
type Report struct {
	Types   []TypeReport    `yaml:"types"`
	Skipped []SkippedReport `yaml:"skipped,omitempty"`
}

// TypeReport describes one resolved type.
type TypeReport struct {
	Type    string `yaml:"type"`
	Returns string `yaml:"returns"`
	Base    string `yaml:"base,omitempty"`
	Hook    string `yaml:"hook,omitempty"`
	// Inherited lists the fields fixed up by the base chain.
	Inherited []string      `yaml:"inherited,omitempty"`
	Fields    []FieldReport `yaml:"fields"`
}

// FieldReport describes the resolved kind of one direct field.
type FieldReport struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Kind      string `yaml:"kind"`
	Defaulted bool   `yaml:"defaulted,omitempty"`
	Strategy  string `yaml:"strategy,omitempty"`
}

// SkippedReport lists why a type gets no generated methods.
type SkippedReport struct {
	Type   string   `yaml:"type"`
	Errors []string `yaml:"errors"`
}

// GenerateReport builds the explain report of a plan.
func GenerateReport(plan *ClonePlan) *Report {
	report := &Report{
		Types: []TypeReport{},
	}

	for i := range plan.Types {
		report.Types = append(report.Types, typeReport(&plan.Types[i]))
	}

	for _, st := range plan.Skipped {
		sr := SkippedReport{Type: st.ID.String()}
		for _, d := range st.Diagnostics.Errors {
			sr.Errors = append(sr.Errors, d.String())
		}

		report.Skipped = append(report.Skipped, sr)
	}

	return report
}

func typeReport(rt *ResolvedType) TypeReport {
	desc := rt.Type
	ts := analyze.NewTypeStringer(desc.Named.Obj().Pkg())

	tr := TypeReport{
		Type:    desc.ID.String(),
		Returns: ts.TypeString(desc.CloneResult()),
		Hook:    desc.Hook,
		Fields:  []FieldReport{},
	}

	if desc.Base != nil {
		tr.Base = desc.Base.ID.String()

		prefix := ts.FieldPath(desc.ID.Name, desc.BaseField)
		for _, path := range ts.InheritedFields(desc) {
			if strings.HasPrefix(path, prefix+".") {
				tr.Inherited = append(tr.Inherited, path)
			}
		}
	}

	strategies := make(map[string]CloneStrategy, len(rt.Owned))
	for _, of := range rt.Owned {
		strategies[of.Field.Name] = of.Strategy
	}

	for _, cf := range rt.Fields {
		fr := FieldReport{
			Name:      cf.Field.Name,
			Type:      ts.TypeString(cf.Field.Type),
			Kind:      cf.Kind.String(),
			Defaulted: cf.Defaulted,
		}

		if s, ok := strategies[cf.Field.Name]; ok {
			fr.Strategy = s.String()
		}

		tr.Fields = append(tr.Fields, fr)
	}

	return tr
}

// ReportYAML renders the explain report of a plan as YAML.
func ReportYAML(plan *ClonePlan) ([]byte, error) {
	return yaml.Marshal(GenerateReport(plan))
}

// FormatReport formats an explain report as human-readable tables.
func FormatReport(report *Report) string {
	var sb strings.Builder

	for _, tr := range report.Types {
		fmt.Fprintf(&sb, "\n=== %s ===\n", tr.Type)
		fmt.Fprintf(&sb, "Clone() returns %s\n", tr.Returns)

		if tr.Base != "" {
			fmt.Fprintf(&sb, "base: %s (%d inherited field(s))\n", tr.Base, len(tr.Inherited))
		}

		if tr.Hook != "" {
			fmt.Fprintf(&sb, "hook: %s()\n", tr.Hook)
		}

		if len(tr.Fields) == 0 {
			sb.WriteString("no direct fields\n")

			continue
		}

		tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tTYPE\tKIND\tSTRATEGY")

		for _, f := range tr.Fields {
			kind := f.Kind
			if f.Defaulted {
				kind += " (default)"
			}

			strategy := f.Strategy
			if strategy == "" {
				strategy = "-"
			}

			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, f.Type, kind, strategy)
		}

		_ = tw.Flush()
	}

	for _, sr := range report.Skipped {
		fmt.Fprintf(&sb, "\n=== %s (skipped) ===\n", sr.Type)

		for _, e := range sr.Errors {
			fmt.Fprintf(&sb, "  ✗ %s\n", e)
		}
	}

	return sb.String()
}
