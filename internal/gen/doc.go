// Package gen writes the Clone and FixOwnedFields methods of resolved types.
//
// Generation uses text/template, then golang.org/x/tools/imports to format the
// result. One file is produced per package, next to the package sources, with
// types in the order the plan lists them: bases before the types embedding
// them.
//
// For a type T the generated Clone shallow-copies the receiver into a new T
// and calls FixOwnedFields on the copy. FixOwnedFields then:
//   - calls the base's FixOwnedFields, when T embeds a base
//   - replaces each owned field with a clone of its value, leaving absent
//     values absent
//   - calls the hand-written hook, when T declares one
package gen
