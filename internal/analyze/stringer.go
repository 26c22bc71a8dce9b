package analyze

import (
	"go/types"
	"strings"
)

// TypePath builds a readable path string for a field.
// Examples:
//   - "Node" for a type
//   - "Node.Next" for a field
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{
		parts: []string{root},
	}
}

// Field appends a field name to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{
		parts: append(append([]string{}, p.parts...), name),
	}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

// TypeStringer renders types relative to a package.
type TypeStringer struct {
	from *types.Package
}

// NewTypeStringer creates a TypeStringer that omits the qualifier of types
// declared in from. A nil package qualifies every type by package name.
func NewTypeStringer(from *types.Package) *TypeStringer {
	return &TypeStringer{from: from}
}

// TypeString returns a human-readable string representation of a type.
func (s *TypeStringer) TypeString(t types.Type) string {
	if t == nil {
		return "<nil>"
	}

	return types.TypeString(t, s.qualifier)
}

func (s *TypeStringer) qualifier(pkg *types.Package) string {
	if s.from != nil && pkg.Path() == s.from.Path() {
		return ""
	}

	return pkg.Name()
}

// FieldPath returns a path string for a field within a type.
// Example: Node, Next -> "Node.Next"
func (s *TypeStringer) FieldPath(typeName string, fieldNames ...string) string {
	path := NewTypePath(typeName)
	for _, fn := range fieldNames {
		path = path.Field(fn)
	}
	return path.String()
}

// InheritedFields returns the paths of every field a participating type
// carries, walking up its base chain. Base fields are listed first.
func (s *TypeStringer) InheritedFields(desc *TypeDescriptor) []string {
	if desc == nil {
		return nil
	}

	var paths []string

	path := NewTypePath(desc.ID.Name)
	if desc.Base != nil {
		for _, inherited := range s.InheritedFields(desc.Base) {
			paths = append(paths, path.Field(desc.BaseField).String()+strings.TrimPrefix(inherited, desc.Base.ID.Name))
		}
	}

	for _, f := range desc.Fields {
		if f.Name == desc.BaseField {
			continue
		}

		paths = append(paths, path.Field(f.Name).String())
	}

	return paths
}
