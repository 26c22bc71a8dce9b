package plan

import (
	"fmt"
	"slices"

	"clonegen/internal/analyze"
	"clonegen/internal/diagnostic"
)

// Resolver performs the resolution pipeline: classification, validation and
// inheritance chaining for every participating type of a graph.
type Resolver struct {
	graph    *analyze.TypeGraph
	config   Config
	reporter diagnostic.Reporter

	plan *ClonePlan
	// passed records the types that made it into the plan.
	passed map[analyze.TypeID]bool
}

// NewResolver creates a new Resolver. Every diagnostic is forwarded to
// reporter as it is produced; a nil reporter discards them. They are also
// collected on the returned plan.
func NewResolver(graph *analyze.TypeGraph, config Config, reporter diagnostic.Reporter) *Resolver {
	if reporter == nil {
		reporter = diagnostic.Discard
	}

	if config.Tag == "" {
		config.Tag = DefaultConfig().Tag
	}

	return &Resolver{
		graph:    graph,
		config:   config,
		reporter: reporter,
	}
}

// Resolve runs the pipeline. Types that fail validation are listed in
// ClonePlan.Skipped; the returned error is reserved for failures that stop the
// whole run.
func (r *Resolver) Resolve() (*ClonePlan, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	r.plan = &ClonePlan{TypeGraph: r.graph}
	r.passed = make(map[analyze.TypeID]bool)

	var participants, plain []*analyze.TypeDescriptor

	for _, desc := range r.types() {
		if desc.Generate {
			participants = append(participants, desc)
		} else {
			plain = append(plain, desc)
		}
	}

	ordered, err := chainOrder(participants)
	if err != nil {
		return r.plan, err
	}

	for _, desc := range ordered {
		r.resolveType(desc)
	}

	for _, desc := range plain {
		r.checkSliced(desc)
	}

	return r.plan, nil
}

// types returns the graph's descriptors in a stable order: packages by path,
// types in source order.
func (r *Resolver) types() []*analyze.TypeDescriptor {
	paths := make([]string, 0, len(r.graph.Packages))
	for path := range r.graph.Packages {
		paths = append(paths, path)
	}

	slices.Sort(paths)

	var out []*analyze.TypeDescriptor

	for _, path := range paths {
		for _, id := range r.graph.Packages[path].Types {
			if desc := r.graph.GetType(id); desc != nil {
				out = append(out, desc)
			}
		}
	}

	return out
}

// resolveType validates one participating type. The type is added to the plan
// only when no error was reported for it: a clone method that silently
// under-copies is worse than none.
func (r *Resolver) resolveType(desc *analyze.TypeDescriptor) {
	is := r.newIssues(desc)

	rt := ResolvedType{Type: desc}

	if r.checkType(desc, is) {
		rt.Fields = r.classify(desc, is)
		rt.Owned = r.validate(rt.Fields, is)
	}

	if is.diag.HasErrors() {
		r.plan.Skipped = append(r.plan.Skipped, SkippedType{
			ID:          desc.ID,
			Diagnostics: is.diag,
		})

		return
	}

	rt.Diagnostics = is.diag
	r.passed[desc.ID] = true
	r.plan.Types = append(r.plan.Types, rt)
}

// Explain returns a one-line summary of the plan.
func (p *ClonePlan) Explain() string {
	return fmt.Sprintf("%d type(s) resolved, %d skipped, %d error(s), %d warning(s), %d suggestion(s)",
		len(p.Types), len(p.Skipped),
		len(p.Diagnostics.Errors), len(p.Diagnostics.Warnings), len(p.Diagnostics.Suggestions))
}
