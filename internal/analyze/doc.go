// Package analyze provides package loading and type graph extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types
// to build a canonical in-memory model of the struct types that take part in
// the clone protocol.
//
// A type takes part when its doc comment carries the generate directive:
//
//	//clonegen:generate
//	type Node struct {
//		Next  *Node `clone:"child"`
//		Owner *User `clone:"reference"`
//		Value int
//	}
//
// The directive accepts returns=<Interface> to make the generated Clone
// return an interface declared in the same package.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeDescriptor: direct fields, directive options, base link, hook
//   - FieldDescriptor: declared type, marker, mutability, reference semantics
package analyze
