// Package diagnostic provides structured suggestions, warnings and errors
// produced while validating types against the clone protocol.
//
// Key capabilities:
//   - Unclassified field suggestions
//   - Fatal ownership errors that stop generation for a type
//   - Positions for editor and vet integration
//   - A Reporter sink so callers decide where issues go
package diagnostic
