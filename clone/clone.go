// Package clone is the runtime support imported by code that clonegen
// generates.
//
// A type takes part in the clone protocol by exposing the clone capability:
// a zero-argument Clone method returning a value of its own type. Generated
// types get the method from clonegen; hand-written types can implement it
// directly without adopting the rest of the protocol.
//
// Clone follows ordinary copy semantics. It is safe to clone different values
// from different goroutines, and the same value from several goroutines as long
// as nothing mutates it meanwhile. Object graphs must be acyclic in the owned
// direction: a value that owns itself, directly or through other owned values,
// makes Clone recurse forever. Nothing in this package detects that.
package clone

// Cloner is the clone capability.
type Cloner[T any] interface {
	// Clone returns an independent copy of the receiver.
	Clone() T
}

// Elem constrains collection elements cloned by Slice and Map. Elements are
// compared against their zero value so that absent entries stay absent.
type Elem[T any] interface {
	comparable
	Cloner[T]
}

// Slice returns a copy of s in which every non-zero element is replaced by its
// clone. A nil slice is returned as nil.
func Slice[S ~[]E, E Elem[E]](s S) S {
	if s == nil {
		return nil
	}

	var zero E

	out := make(S, len(s))
	for i, e := range s {
		if e == zero {
			continue
		}

		out[i] = e.Clone()
	}

	return out
}

// Map returns a copy of m in which every non-zero value is replaced by its
// clone. Keys are copied as-is. A nil map is returned as nil.
func Map[M ~map[K]E, K comparable, E Elem[E]](m M) M {
	if m == nil {
		return nil
	}

	var zero E

	out := make(M, len(m))
	for k, e := range m {
		if e == zero {
			out[k] = e
			continue
		}

		out[k] = e.Clone()
	}

	return out
}
