package gen_test

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// runExampleIntegrationTest regenerates an example package through the CLI
// and runs the example's own tests against the result.
func runExampleIntegrationTest(t *testing.T, exampleName string) {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test runs the go tool")
	}

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	cmd := exec.CommandContext(t.Context(), "go", "run", "./cmd/clonegen", "gen",
		"--pkg", "./examples/"+exampleName,
		"--config", filepath.Join(repoRoot, "clonegen.yaml"),
	)
	cmd.Dir = repoRoot

	b, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("gen failed: %v\n%s", err, string(b))
	}

	test := exec.CommandContext(t.Context(), "go", "test", "./examples/"+exampleName, "-count=1")
	test.Dir = repoRoot

	b, err = test.CombinedOutput()
	if err != nil {
		t.Fatalf("example tests failed: %v\n%s", err, string(b))
	}
}
