// Command clonecheck checks the clone protocol on Go packages.
//
// It runs standalone or as a vet tool:
//
//	clonecheck ./...
//	go vet -vettool=$(which clonecheck) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"clonegen/internal/check"
)

func main() {
	singlechecker.Main(check.Analyzer)
}
