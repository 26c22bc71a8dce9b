package analyze

import (
	"go/token"
	"go/types"
	"reflect"
)

//go:generate go tool stringer -type=Kind -linecomment -output=kind_string.go

// Method names that make up the clone protocol.
const (
	CloneMethod = "Clone"
	FixMethod   = "FixOwnedFields"
)

// Marker values recognized in the clone struct tag.
const (
	MarkerChild     = "child"
	MarkerReference = "reference"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "clonegen/examples/graph"
	Name    string // e.g., "Node"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// Kind is the clone classification of a field.
type Kind int

const (
	KindUnclassified Kind = iota // unclassified
	KindOwned                    // owned
	KindShared                   // shared
	KindUnmanaged                // unmanaged
)

// Directive holds the options of a //clonegen:generate comment.
type Directive struct {
	// Returns names an interface declared in the same package that the
	// generated Clone returns instead of *T.
	Returns string
	// Unknown lists options the directive does not recognize.
	Unknown []string
	// ReturnsType is the resolved Returns type, nil when Returns is empty or
	// does not name a type.
	ReturnsType types.Type
	// Inherited is true when Returns was taken from the base type rather than
	// written on the directive.
	Inherited bool
}

// TypeDescriptor describes one named struct type of the analyzed packages.
type TypeDescriptor struct {
	ID    TypeID
	Named *types.Named
	Pos   token.Pos
	// Position is Pos resolved against the file set it was loaded with.
	Position token.Position
	// Fields lists the direct fields in declaration order.
	Fields []FieldDescriptor
	// Generate is true when the type carries the generate directive.
	Generate  bool
	Directive Directive
	// Struct is false when the directive sits on a non-struct type.
	Struct bool
	// Generic is true when the type declares type parameters.
	Generic bool
	// Base is the participating type embedded by this one, if any.
	Base *TypeDescriptor
	// BaseField is the name of the embedded field holding Base.
	BaseField string
	// BaseCandidates names every embedded field that could act as a base.
	BaseCandidates []string
	// Hook is the extension method declared directly on the type, if any.
	Hook string
	// External is true for bases outside the graph that take part in the
	// protocol through a hand-written FixOwnedFields method.
	External bool
	// Declared lists the protocol methods (Clone, FixOwnedFields) written by
	// hand on the type itself. Methods of generated files are not counted.
	Declared []string
	// BaseReturns is the interface the base's Clone returns, nil when the
	// base clones to a pointer or there is no base.
	BaseReturns types.Type
}

// Pointer returns *T for the described type.
func (t *TypeDescriptor) Pointer() types.Type {
	return types.NewPointer(t.Named)
}

// CloneResult returns the type the Clone method of a participating type
// returns: the Returns interface when set, *T otherwise.
func (t *TypeDescriptor) CloneResult() types.Type {
	if t.Directive.ReturnsType != nil {
		return t.Directive.ReturnsType
	}

	return t.Pointer()
}

// FieldDescriptor describes one direct struct field.
type FieldDescriptor struct {
	Name     string
	Index    int
	Type     types.Type
	Tag      reflect.StructTag
	Embedded bool
	// Marker is the classification marker from the tag or the configuration,
	// empty when the field is unmarked.
	Marker string
	// ConfigMarker is the marker given by the configuration, kept separately
	// so that disagreements with the tag can be reported.
	ConfigMarker string
	// Mutable reports whether code generated in the declaring package can
	// assign the field.
	Mutable bool
	// HoldsRefs reports whether copying the field by value shares state.
	HoldsRefs bool
	Pos       token.Pos
	Position  token.Position
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeDescriptor for all named struct types.
	Types map[TypeID]*TypeDescriptor
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Fset is the file set positions were recorded against.
	Fset *token.FileSet
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeDescriptor),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeDescriptor for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeDescriptor {
	return g.Types[id]
}

// Lookup returns the descriptor for a named type, or nil.
func (g *TypeGraph) Lookup(named *types.Named) *TypeDescriptor {
	if named == nil || named.Obj().Pkg() == nil {
		return nil
	}

	return g.Types[IDOf(named.Obj())]
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string        // Import path
	Name  string        // Package name
	Dir   string        // Directory holding the package sources
	Types []TypeID      // Struct types defined in this package, in source order
	Pkg   *types.Package
}

// IDOf returns the TypeID of a type name object.
func IDOf(obj *types.TypeName) TypeID {
	id := TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	return id
}
