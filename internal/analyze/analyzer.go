package analyze

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
)

// Options controls how type-checked packages are turned into descriptors.
type Options struct {
	// Tag is the struct tag key holding classification markers.
	Tag string
	// Hook is the name of the hand-written extension method.
	Hook string
	// ValueTypes lists named types ("time.Time") that are copied by value even
	// though their representation holds references.
	ValueTypes []string
	// Markers classifies untagged fields from configuration. The outer key is
	// a type, either its full TypeID string or its bare name; the inner map
	// goes from field name to marker.
	Markers map[string]map[string]string
	// Generated is the name of the files clonegen writes. Protocol methods
	// declared in such files are not treated as hand-written.
	Generated string
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		Tag:        "clone",
		Hook:       "AfterClone",
		ValueTypes: []string{"time.Time"},
	}
}

// Analyzer builds a TypeGraph from type-checked packages.
type Analyzer struct {
	opts       Options
	graph      *TypeGraph
	valueTypes map[string]bool
	externals  map[TypeID]*TypeDescriptor

	// External reports whether a type outside the graph takes part in the
	// protocol. It may be nil.
	External func(*types.TypeName) bool
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	if opts.Tag == "" {
		opts.Tag = DefaultOptions().Tag
	}

	vt := make(map[string]bool, len(opts.ValueTypes))
	for _, name := range opts.ValueTypes {
		vt[name] = true
	}

	return &Analyzer{
		opts:       opts,
		graph:      NewTypeGraph(),
		valueTypes: vt,
		externals:  make(map[TypeID]*TypeDescriptor),
	}
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// AddPackage extracts the named struct types of a package. Types carrying the
// generate directive are flagged for generation; other struct types are kept
// so that bases and promoted Clone methods can be checked.
func (a *Analyzer) AddPackage(pkg *types.Package, files []*ast.File, fset *token.FileSet, dir string) {
	if a.graph.Fset == nil {
		a.graph.Fset = fset
	}

	pkgInfo := &PackageInfo{
		Path: pkg.Path(),
		Name: pkg.Name(),
		Dir:  dir,
		Pkg:  pkg,
	}

	docs, order := typeDocs(files)

	scope := pkg.Scope()
	for _, name := range order {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		opts, generate := ParseDirective(docs[name])

		st, isStruct := named.Underlying().(*types.Struct)
		if !isStruct && !generate {
			continue
		}

		desc := &TypeDescriptor{
			ID:       IDOf(typeName),
			Named:    named,
			Pos:      typeName.Pos(),
			Position: fset.Position(typeName.Pos()),
			Generate: generate,
			Struct:   isStruct,
			Generic:  named.TypeParams().Len() > 0,
			Directive: Directive{
				Returns: opts.Returns,
				Unknown: opts.Unknown,
			},
		}

		if opts.Returns != "" {
			if obj, ok := scope.Lookup(opts.Returns).(*types.TypeName); ok {
				desc.Directive.ReturnsType = obj.Type()
			}
		}

		if isStruct {
			desc.Fields = a.fields(pkg, desc.ID, st, fset)
		}

		desc.Hook = a.hook(named)
		desc.Declared = a.declared(named, fset)

		a.graph.Types[desc.ID] = desc
		pkgInfo.Types = append(pkgInfo.Types, desc.ID)
	}

	a.graph.Packages[pkg.Path()] = pkgInfo
}

// fields describes the direct fields of a struct declared as the type id.
func (a *Analyzer) fields(pkg *types.Package, id TypeID, st *types.Struct, fset *token.FileSet) []FieldDescriptor {
	overrides := a.markerOverrides(id)

	out := make([]FieldDescriptor, 0, st.NumFields())
	for i := range st.NumFields() {
		field := st.Field(i)

		fd := FieldDescriptor{
			Name:      field.Name(),
			Index:     i,
			Type:      field.Type(),
			Tag:       reflect.StructTag(st.Tag(i)),
			Embedded:  field.Embedded(),
			Mutable:   field.Name() != "_" && (field.Exported() || field.Pkg() == pkg),
			HoldsRefs: a.holdsRefs(field.Type(), nil),
			Pos:       field.Pos(),
			Position:  fset.Position(field.Pos()),
		}

		fd.Marker = a.tagMarker(fd.Tag)
		fd.ConfigMarker = overrides[fd.Name]

		if fd.Marker == "" {
			fd.Marker = fd.ConfigMarker
		}

		out = append(out, fd)
	}

	return out
}

// tagMarker returns the first comma-separated element of the clone tag.
func (a *Analyzer) tagMarker(tag reflect.StructTag) string {
	value, ok := tag.Lookup(a.opts.Tag)
	if !ok {
		return ""
	}

	marker, _, _ := strings.Cut(value, ",")

	return strings.TrimSpace(marker)
}

func (a *Analyzer) markerOverrides(id TypeID) map[string]string {
	if m, ok := a.opts.Markers[id.String()]; ok {
		return m
	}

	return a.opts.Markers[id.Name]
}

// hook returns the extension method name when the type itself declares it
// with no parameters and no results. Promoted methods do not count: a base's
// hook already runs from the base's FixOwnedFields.
func (a *Analyzer) hook(named *types.Named) string {
	if a.opts.Hook == "" {
		return ""
	}

	for i := range named.NumMethods() {
		m := named.Method(i)
		if m.Name() != a.opts.Hook {
			continue
		}

		sig, ok := m.Type().(*types.Signature)
		if ok && sig.Params().Len() == 0 && sig.Results().Len() == 0 {
			return m.Name()
		}
	}

	return ""
}

// declared returns the protocol methods the type declares itself outside of
// generated files.
func (a *Analyzer) declared(named *types.Named, fset *token.FileSet) []string {
	var out []string

	for i := range named.NumMethods() {
		m := named.Method(i)
		if m.Name() != CloneMethod && m.Name() != FixMethod {
			continue
		}

		if a.opts.Generated != "" && filepath.Base(fset.Position(m.Pos()).Filename) == a.opts.Generated {
			continue
		}

		out = append(out, m.Name())
	}

	slices.Sort(out)

	return out
}

// holdsRefs reports whether copying a value of type t by value leaves the copy
// sharing state with the original.
func (a *Analyzer) holdsRefs(t types.Type, seen map[*types.Named]bool) bool {
	t = types.Unalias(t)

	switch tt := t.(type) {
	case *types.Named:
		obj := tt.Obj()
		if obj.Pkg() != nil && a.valueTypes[obj.Pkg().Path()+"."+obj.Name()] {
			return false
		}

		if seen[tt] {
			return false
		}

		if seen == nil {
			seen = make(map[*types.Named]bool)
		}

		seen[tt] = true

		return a.holdsRefs(tt.Underlying(), seen)

	case *types.Basic:
		return tt.Kind() == types.UnsafePointer

	case *types.Struct:
		for i := range tt.NumFields() {
			if a.holdsRefs(tt.Field(i).Type(), seen) {
				return true
			}
		}

		return false

	case *types.Array:
		return a.holdsRefs(tt.Elem(), seen)

	default:
		// Pointers, slices, maps, channels, functions, interfaces and type
		// parameters.
		return true
	}
}

// Link resolves base types once every package has been added. A base is an
// untagged, embedded, non-pointer struct whose type takes part in the
// protocol.
func (a *Analyzer) Link() {
	ids := make([]TypeID, 0, len(a.graph.Types))
	for id := range a.graph.Types {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(x, y TypeID) int {
		return strings.Compare(x.String(), y.String())
	})

	for _, id := range ids {
		desc := a.graph.Types[id]

		for _, f := range desc.Fields {
			if !f.Embedded || f.Marker != "" {
				continue
			}

			named, ok := types.Unalias(f.Type).(*types.Named)
			if !ok {
				continue
			}

			if _, ok := named.Underlying().(*types.Struct); !ok {
				continue
			}

			base := a.participant(named)
			if base == nil {
				continue
			}

			desc.BaseCandidates = append(desc.BaseCandidates, f.Name)
			if desc.Base == nil {
				desc.Base = base
				desc.BaseField = f.Name
			}
		}
	}

	done := make(map[*TypeDescriptor]bool, len(ids))
	for _, id := range ids {
		a.inheritReturns(a.graph.Types[id], done)
	}
}

// inheritReturns records the interface the base's Clone returns. A derived
// type without a returns option whose base clones to an interface of the same
// package takes that interface over, so that its own Clone keeps satisfying
// whatever the promoted one did. Bases are handled before the types embedding
// them.
func (a *Analyzer) inheritReturns(desc *TypeDescriptor, done map[*TypeDescriptor]bool) {
	if done[desc] {
		return
	}

	done[desc] = true

	base := desc.Base
	if base == nil {
		return
	}

	a.inheritReturns(base, done)

	var result types.Type
	if base.Generate && !base.External {
		result = base.CloneResult()
	} else {
		result = cloneResult(base.Named)
	}

	if result == nil || !types.IsInterface(result) {
		return
	}

	desc.BaseReturns = result

	if !desc.Generate || desc.Directive.Returns != "" {
		return
	}

	named, ok := types.Unalias(result).(*types.Named)
	if !ok || named.Obj().Pkg() != desc.Named.Obj().Pkg() {
		return
	}

	desc.Directive.Returns = named.Obj().Name()
	desc.Directive.ReturnsType = named
	desc.Directive.Inherited = true
}

// cloneResult returns the single result of the Clone method of *T, or nil.
func cloneResult(named *types.Named) types.Type {
	sel := types.NewMethodSet(types.NewPointer(named)).Lookup(nil, CloneMethod)
	if sel == nil {
		return nil
	}

	sig, ok := sel.Type().(*types.Signature)
	if !ok || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
		return nil
	}

	return sig.Results().At(0).Type()
}

// participant returns the descriptor of a named type taking part in the
// protocol, or nil.
func (a *Analyzer) participant(named *types.Named) *TypeDescriptor {
	desc := a.graph.Lookup(named)
	if desc != nil && (desc.Generate || slices.Contains(desc.Declared, FixMethod) && HasFixMethod(named)) {
		return desc
	}

	if desc != nil {
		return nil
	}

	external := a.External != nil && a.External(named.Obj())
	if !external && !HasFixMethod(named) {
		return nil
	}

	id := IDOf(named.Obj())
	if ext, ok := a.externals[id]; ok {
		return ext
	}

	ext := &TypeDescriptor{
		ID:       id,
		Named:    named,
		Pos:      named.Obj().Pos(),
		Struct:   true,
		External: true,
		Generate: external,
	}
	a.externals[id] = ext

	return ext
}

// HasFixMethod reports whether T declares a FixOwnedFields method with no
// parameters and no results. Methods promoted from embedded fields do not
// count.
func HasFixMethod(named *types.Named) bool {
	sel := types.NewMethodSet(types.NewPointer(named)).Lookup(nil, FixMethod)
	if sel == nil || len(sel.Index()) != 1 {
		return false
	}

	sig, ok := sel.Type().(*types.Signature)

	return ok && sig.Params().Len() == 0 && sig.Results().Len() == 0
}
