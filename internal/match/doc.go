// Package match ranks identifiers by similarity to a misspelled one. It backs
// the "did you mean" hints attached to diagnostics about unknown markers,
// directive options and type names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Rank: orders candidate names by similarity
//   - Closest: picks the single name worth suggesting, if any
package match
