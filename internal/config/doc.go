// Package config loads the clonegen.yaml file and projects it onto the
// options of each pipeline stage.
//
// Example:
//
//	version: "1"
//	packages: [./examples/graph]
//	output: clone_gen.go
//	tag: clone
//	hook: AfterClone
//	unclassified: shared
//	runtime: clonegen/clone
//	value_types: [time.Time]
//	types:
//	  - name: clonegen/examples/graph.Node
//	    fields:
//	      Graph: reference
//
// Entries under types classify fields that carry no struct tag. Names are
// either full (import path and type name) or bare type names.
package config
