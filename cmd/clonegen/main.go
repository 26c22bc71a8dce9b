// Package main provides the CLI entrypoint for clonegen.
//
// clonegen reads Go packages, finds the struct types marked with a
// //clonegen:generate directive and writes Clone and FixOwnedFields methods
// for them:
//   - gen writes the methods next to the types
//   - check validates the types and reports diagnostics without writing
//   - explain prints, per type, how every field is going to be copied
//   - init writes a default clonegen.yaml
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	app := newApp(newCLI(os.Stdout, os.Stderr))

	if err := app.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "clonegen: %v\n", err)
		os.Exit(1)
	}
}
