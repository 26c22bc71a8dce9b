package plan

import (
	"errors"
	"fmt"
	"go/types"
	"slices"

	"clonegen/internal/analyze"
)

// errNoCapability is returned when a type has no Clone method at all.
var errNoCapability = errors.New("no Clone() method")

// cloneResult returns the type produced by the clone capability of t.
// Pointers to participating types count as capable before their methods are
// generated; their validation is their own business.
func (r *Resolver) cloneResult(t types.Type) (types.Type, bool) {
	if ptr, ok := types.Unalias(t).(*types.Pointer); ok {
		if named, ok := types.Unalias(ptr.Elem()).(*types.Named); ok {
			desc := r.graph.Lookup(named)
			if desc != nil && desc.Generate && desc.Struct && !desc.Generic {
				return desc.CloneResult(), true
			}
		}
	}

	obj, _, _ := types.LookupFieldOrMethod(t, true, nil, analyze.CloneMethod)

	fn, ok := obj.(*types.Func)
	if !ok {
		return nil, false
	}

	sig, ok := fn.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil, false
	}

	// A Clone left in a generated file of a type that no longer asks for one
	// goes away on regeneration.
	if desc := r.receiver(sig); desc != nil && !desc.Generate && !slices.Contains(desc.Declared, analyze.CloneMethod) {
		return nil, false
	}

	return sig.Results().At(0).Type(), true
}

// receiver returns the graph descriptor of the type a method is declared on.
func (r *Resolver) receiver(sig *types.Signature) *analyze.TypeDescriptor {
	if sig.Recv() == nil {
		return nil
	}

	t := types.Unalias(sig.Recv().Type())
	if ptr, ok := t.(*types.Pointer); ok {
		t = types.Unalias(ptr.Elem())
	}

	named, ok := t.(*types.Named)
	if !ok {
		return nil
	}

	return r.graph.Lookup(named.Origin())
}

// capability works out how a value of type t can be deep-copied. A direct
// Clone method wins over cloning the elements of a slice or map.
func (r *Resolver) capability(t types.Type, ts *analyze.TypeStringer) (CloneStrategy, bool, error) {
	res, ok := r.cloneResult(t)
	if ok && types.AssignableTo(res, t) {
		return StrategyDirect, nilable(t), nil
	}

	var elem types.Type

	strategy := StrategyNone

	switch u := t.Underlying().(type) {
	case *types.Slice:
		elem, strategy = u.Elem(), StrategySlice
	case *types.Map:
		elem, strategy = u.Elem(), StrategyMap
	}

	if strategy == StrategyNone {
		if ok {
			return StrategyNone, false, fmt.Errorf("Clone() returns %s, which is not assignable to %s",
				ts.TypeString(res), ts.TypeString(t))
		}

		return StrategyNone, false, errNoCapability
	}

	if !pointerLike(elem) {
		return StrategyNone, false, fmt.Errorf("elements of type %s must be pointers or interfaces",
			ts.TypeString(elem))
	}

	elemRes, ok := r.cloneResult(elem)
	if !ok {
		return StrategyNone, false, fmt.Errorf("element type %s has no Clone() method",
			ts.TypeString(elem))
	}

	if !types.Identical(elemRes, elem) {
		return StrategyNone, false, fmt.Errorf("Clone() of element type %s returns %s",
			ts.TypeString(elem), ts.TypeString(elemRes))
	}

	return strategy, true, nil
}

// nilable reports whether t can hold no value at all.
func nilable(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Interface, *types.Slice, *types.Map, *types.Chan, *types.Signature:
		return true
	default:
		return false
	}
}

func pointerLike(t types.Type) bool {
	switch t.Underlying().(type) {
	case *types.Pointer, *types.Interface:
		return true
	default:
		return false
	}
}

// behaviour reports whether t describes behaviour rather than data.
func behaviour(t types.Type) (string, bool) {
	switch u := t.Underlying().(type) {
	case *types.Signature:
		return "func", true
	case *types.Chan:
		return "chan", true
	case *types.Basic:
		if u.Kind() == types.UnsafePointer {
			return "unsafe.Pointer", true
		}
	}

	return "", false
}
