package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes the raw template output to a sidecar of the
// intended file. The sidecar carries a build tag nobody sets so that it never
// breaks the package build. Best-effort: errors are only returned for the
// caller to ignore.
func writeDebugUnformatted(dir, filename string, content []byte) error {
	if dir == "" || filename == "" {
		return nil
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	// Keep it a .go file so editors can syntax highlight, but avoid colliding with
	// real output.
	debugName := strings.TrimSuffix(filename, ".go") + ".unformatted.go"
	body := append([]byte("//go:build clonegen_debug\n\n"), content...)

	return os.WriteFile(filepath.Join(dir, debugName), body, filePerm)
}
