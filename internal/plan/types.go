package plan

import (
	"clonegen/internal/analyze"
	"clonegen/internal/common"
	"clonegen/internal/diagnostic"
)

// ClonePlan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type ClonePlan struct {
	// Types lists the types that passed validation, bases before the types
	// embedding them.
	Types []ResolvedType
	// Skipped lists the participating types that failed validation. No code
	// is generated for them.
	Skipped []SkippedType
	// TypeGraph holds all analyzed types and packages to allow looking up package names.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all suggestions, warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// Lookup returns the resolved type with the given ID, or nil.
func (p *ClonePlan) Lookup(id analyze.TypeID) *ResolvedType {
	for i := range p.Types {
		if p.Types[i].Type.ID == id {
			return &p.Types[i]
		}
	}

	return nil
}

// ResolvedType is a participating type that passed validation.
type ResolvedType struct {
	// Type is the analyzed type.
	Type *analyze.TypeDescriptor
	// Fields lists every direct field except the base, in declaration order,
	// with its resolved clone kind.
	Fields []ClassifiedField
	// Owned lists the owned fields in declaration order and how to clone them.
	Owned []OwnedField
	// Diagnostics holds the non-fatal issues found for this type.
	Diagnostics diagnostic.Diagnostics
}

// SkippedType is a participating type that failed validation.
type SkippedType struct {
	ID          analyze.TypeID
	Diagnostics diagnostic.Diagnostics
}

// ClassifiedField is a direct field with its resolved clone kind.
type ClassifiedField struct {
	Field *analyze.FieldDescriptor
	// Kind is never KindUnclassified.
	Kind analyze.Kind
	// Defaulted is true when the field carried no marker and Kind was
	// filled in by the unclassified policy.
	Defaulted bool
}

// OwnedField is an owned field that passed validation.
type OwnedField struct {
	Field    *analyze.FieldDescriptor
	Strategy CloneStrategy
	// Nilable is true when the field can hold no value, which the generated
	// code leaves untouched.
	Nilable bool
}

// CloneStrategy describes how an owned field is cloned.
type CloneStrategy int

const (
	StrategyNone   CloneStrategy = iota
	StrategyDirect               // f = f.Clone()
	StrategySlice                // f = clone.Slice(f)
	StrategyMap                  // f = clone.Map(f)
)

// String returns a human-readable strategy name.
func (s CloneStrategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyDirect:
		return "direct"
	case StrategySlice:
		return "slice"
	case StrategyMap:
		return "map"
	default:
		return common.UnknownStr
	}
}

// UsesRuntime reports whether generated code for the strategy calls into the
// clone runtime package.
func (s CloneStrategy) UsesRuntime() bool {
	return s == StrategySlice || s == StrategyMap
}
