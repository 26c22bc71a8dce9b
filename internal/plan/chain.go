package plan

import (
	"fmt"
	"go/types"
	"slices"
	"strings"

	"clonegen/internal/analyze"
	"clonegen/internal/common"
	"clonegen/internal/diagnostic"
	"clonegen/internal/match"
)

// directiveOptions lists the keys the generate directive accepts.
var directiveOptions = []string{"returns"}

// chainOrder sorts participating types so that every base comes before the
// types embedding it.
func chainOrder(descs []*analyze.TypeDescriptor) ([]*analyze.TypeDescriptor, error) {
	index := make(map[analyze.TypeID]int, len(descs))
	for i, d := range descs {
		index[d.ID] = i
	}

	order, err := topoSort(len(descs), func(i int) []int {
		base := descs[i].Base
		if base == nil {
			return nil
		}

		if j, ok := index[base.ID]; ok {
			return []int{j}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ordering base types: %w", err)
	}

	out := make([]*analyze.TypeDescriptor, 0, len(order))
	for _, i := range order {
		out = append(out, descs[i])
	}

	return out, nil
}

// checkType applies the type-level rules. It returns false when the type's
// fields must not be looked at.
func (r *Resolver) checkType(desc *analyze.TypeDescriptor, is *issues) bool {
	if !desc.Struct {
		is.typeIssue(diagnostic.SeverityError, CodeNotAStruct,
			"%s is not a struct type; only structs can be cloned field by field", desc.ID.Name)

		return false
	}

	if desc.Generic {
		is.typeIssue(diagnostic.SeverityError, CodeGenericType,
			"%s has type parameters, which are not supported", desc.ID.Name)

		return false
	}

	for _, opt := range desc.Directive.Unknown {
		msg := fmt.Sprintf("unknown directive option %q", opt)

		key, _, _ := strings.Cut(opt, "=")
		if hint := match.DidYouMean(key, directiveOptions); hint != "" {
			msg += "; " + hint
		}

		is.typeIssue(diagnostic.SeverityWarning, CodeUnknownOption, "%s", msg)
	}

	if len(desc.Declared) > 0 {
		is.typeIssue(diagnostic.SeverityError, CodeMethodConflict,
			"%s already declares %s; remove %s or the hand-written methods",
			desc.ID.Name, strings.Join(desc.Declared, " and "), analyze.DirectivePrefix)
	}

	if desc.Directive.Returns != "" {
		if err := r.checkReturns(desc, is.stringer); err != nil {
			is.typeIssue(diagnostic.SeverityError, CodeBadReturns, "returns=%s: %v", desc.Directive.Returns, err)
		} else if err := checkBaseReturns(desc, is.stringer); err != nil {
			is.typeIssue(diagnostic.SeverityError, CodeBadReturns, "returns=%s: %v", desc.Directive.Returns, err)
		}
	} else if desc.BaseReturns != nil {
		is.typeIssue(diagnostic.SeverityError, CodeBadReturns,
			"base %s clones to %s, which a Clone returning %s would hide; add returns= naming an interface of package %s",
			desc.Base.ID.Name, is.stringer.TypeString(desc.BaseReturns), is.stringer.TypeString(desc.Pointer()),
			desc.ID.PkgPath)
	}

	if common.IsMultiple(desc.BaseCandidates) {
		is.typeIssue(diagnostic.SeverityError, CodeMultipleBases,
			"%s embeds more than one cloneable type (%s); only one base is supported",
			desc.ID.Name, strings.Join(desc.BaseCandidates, ", "))
	}

	if base := desc.Base; base != nil && base.Generate && !base.External && !r.passed[base.ID] {
		is.typeIssue(diagnostic.SeverityError, CodeBaseNotCloneable,
			"base %s failed validation, so %s cannot chain to it", base.ID.Name, desc.ID.Name)
	}

	return true
}

// checkReturns verifies that the returns= option names an interface whose
// Clone method returns the interface itself, and that *T provides every other
// method of it.
func (r *Resolver) checkReturns(desc *analyze.TypeDescriptor, ts *analyze.TypeStringer) error {
	rt := desc.Directive.ReturnsType
	if rt == nil {
		err := fmt.Errorf("no type named %s in package %s", desc.Directive.Returns, desc.ID.PkgPath)
		if hint := match.DidYouMean(desc.Directive.Returns, interfaceNames(desc.Named.Obj().Pkg())); hint != "" {
			err = fmt.Errorf("%w; %s", err, hint)
		}

		return err
	}

	iface, ok := rt.Underlying().(*types.Interface)
	if !ok {
		return fmt.Errorf("%s is not an interface", ts.TypeString(rt))
	}

	var hasClone bool

	ptr := desc.Pointer()
	for i := range iface.NumMethods() {
		m := iface.Method(i)

		switch m.Name() {
		case analyze.CloneMethod:
			sig := m.Type().(*types.Signature)
			if sig.Params().Len() != 0 || sig.Results().Len() != 1 || !types.Identical(sig.Results().At(0).Type(), rt) {
				return fmt.Errorf("%s.Clone must take no arguments and return %s", ts.TypeString(rt), ts.TypeString(rt))
			}

			hasClone = true

		case analyze.FixMethod:
			// Generated together with Clone.

		default:
			obj, _, _ := types.LookupFieldOrMethod(ptr, false, m.Pkg(), m.Name())
			if _, ok := obj.(*types.Func); !ok {
				return fmt.Errorf("%s does not implement %s (missing method %s)",
					ts.TypeString(ptr), ts.TypeString(rt), m.Name())
			}
		}
	}

	if !hasClone {
		return fmt.Errorf("%s has no Clone method", ts.TypeString(rt))
	}

	return nil
}

// checkBaseReturns verifies that the Clone of a derived type returns the same
// interface as the Clone of its base, which it hides.
func checkBaseReturns(desc *analyze.TypeDescriptor, ts *analyze.TypeStringer) error {
	if desc.BaseReturns == nil || types.Identical(desc.Directive.ReturnsType, desc.BaseReturns) {
		return nil
	}

	return fmt.Errorf("base %s clones to %s; the Clone of %s must return the same type",
		desc.Base.ID.Name, ts.TypeString(desc.BaseReturns), desc.ID.Name)
}

// checkSliced warns about types that do not take part in the protocol but
// embed a base that does: the promoted Clone would copy only the base part.
func (r *Resolver) checkSliced(desc *analyze.TypeDescriptor) {
	if desc.Generate || desc.Base == nil || slices.Contains(desc.Declared, analyze.CloneMethod) {
		return
	}

	is := r.newIssues(desc)
	is.typeIssue(diagnostic.SeverityWarning, CodeSlicedClone,
		"%s embeds cloneable %s but is not marked %s; the promoted Clone copies only the %s part",
		desc.ID.Name, desc.Base.ID.Name, analyze.DirectivePrefix, desc.BaseField)
}

// interfaceNames lists the interface types declared in pkg.
func interfaceNames(pkg *types.Package) []string {
	var out []string

	for _, name := range pkg.Scope().Names() {
		obj, ok := pkg.Scope().Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}

		if types.IsInterface(obj.Type()) {
			out = append(out, name)
		}
	}

	return out
}
