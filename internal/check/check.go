// Package check defines an Analyzer that enforces the clone protocol on the
// types of a package, the same way clonegen does before generating code.
//
// It reports every diagnostic of the resolution pipeline at the offending
// field or type, prefixed with its severity and categorized by its code.
// Types that pass validation are exported as facts so that packages
// embedding them as bases can be checked on their own.
package check

import (
	"fmt"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/analysis"

	"clonegen/internal/analyze"
	"clonegen/internal/diagnostic"
	"clonegen/internal/plan"
)

const doc = `check types marked //clonegen:generate against the clone protocol

Owned fields (clone:"child") must be assignable, plain data holders and of a
type with a Clone method; unmarked reference fields are reported according to
the -unclassified policy.`

// Analyzer checks the clone protocol.
var Analyzer = &analysis.Analyzer{
	Name:      "clonecheck",
	Doc:       doc,
	Run:       run,
	FactTypes: []analysis.Fact{new(ParticipantFact)},
}

var (
	tagFlag          = analyze.DefaultOptions().Tag
	hookFlag         = analyze.DefaultOptions().Hook
	unclassifiedFlag = string(plan.PolicyShared)
	suggestionsFlag  = true
	outputFlag       = "clone_gen.go"
)

func init() {
	Analyzer.Flags.StringVar(&tagFlag, "tag", tagFlag, "struct tag key holding clone markers")
	Analyzer.Flags.StringVar(&hookFlag, "hook", hookFlag, "name of the method FixOwnedFields calls last")
	Analyzer.Flags.StringVar(&unclassifiedFlag, "unclassified", unclassifiedFlag,
		"policy for unmarked reference fields: shared or error")
	Analyzer.Flags.BoolVar(&suggestionsFlag, "suggestions", suggestionsFlag, "report suggestion-level issues")
	Analyzer.Flags.StringVar(&outputFlag, "output", outputFlag,
		"name of the generated files, whose methods are not taken for hand-written ones")
}

// ParticipantFact marks a type that takes part in the clone protocol through
// generated methods.
type ParticipantFact struct {
	Returns string
}

// AFact implements analysis.Fact.
func (*ParticipantFact) AFact() {}

func (f *ParticipantFact) String() string {
	if f.Returns != "" {
		return "participant returns=" + f.Returns
	}

	return "participant"
}

func run(pass *analysis.Pass) (any, error) {
	opts := analyze.DefaultOptions()
	opts.Tag = tagFlag
	opts.Hook = hookFlag
	opts.Generated = outputFlag

	a := analyze.NewAnalyzer(opts)
	a.External = func(obj *types.TypeName) bool {
		return pass.ImportObjectFact(obj, new(ParticipantFact))
	}

	a.AddPackage(pass.Pkg, pass.Files, pass.Fset, "")
	a.Link()

	cfg := plan.DefaultConfig()
	cfg.Tag = tagFlag
	cfg.Unclassified = plan.UnclassifiedPolicy(unclassifiedFlag)

	p, err := plan.NewResolver(a.Graph(), cfg, diagnostic.ReporterFunc(func(d diagnostic.Diagnostic) {
		report(pass, d)
	})).Resolve()
	if err != nil {
		return nil, err
	}

	for _, rt := range p.Types {
		pass.ExportObjectFact(rt.Type.Named.Obj(), &ParticipantFact{Returns: rt.Type.Directive.Returns})
	}

	return nil, nil
}

func report(pass *analysis.Pass, d diagnostic.Diagnostic) {
	if d.Severity == diagnostic.SeveritySuggestion && !suggestionsFlag {
		return
	}

	pos := d.Pos
	if !inPackage(pass, pos) {
		// Fields of a struct declared elsewhere are reported at the type.
		if obj := pass.Pkg.Scope().Lookup(d.TypeName); obj != nil {
			pos = obj.Pos()
		}
	}

	pass.Report(analysis.Diagnostic{
		Pos:      pos,
		Category: d.Code,
		Message:  fmt.Sprintf("%s: %s", d.Severity, d.String()),
	})
}

func inPackage(pass *analysis.Pass, pos token.Pos) bool {
	for _, f := range pass.Files {
		if f.FileStart <= pos && pos <= f.FileEnd {
			return true
		}
	}

	return false
}
