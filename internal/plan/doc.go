// Package plan provides the resolution pipeline that turns a type graph into
// a ClonePlan consumed by code generation.
//
// Resolution pipeline:
//  1. Analyze packages → type graph
//  2. Order participating types so that bases come before derived types
//  3. For each participating type:
//     - Check the type itself (struct, non-generic, returns=, single base)
//     - Classify every direct field as owned, shared or unmanaged
//     - Validate owned fields and pick their clone strategy
//  4. Emit diagnostics; types with errors are skipped, never half-generated
package plan
