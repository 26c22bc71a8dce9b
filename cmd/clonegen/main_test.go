package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	goerrors "github.com/agilira/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clonegen/internal/config"
)

const moduleRoot = "../.."

func testOptions(pkgs ...string) options {
	return options{
		configPath: filepath.Join(moduleRoot, "clonegen.yaml"),
		packages:   pkgs,
		dir:        moduleRoot,
	}
}

func TestGen_DryRun(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages")
	}

	var stdout, stderr bytes.Buffer

	opts := testOptions("./examples/graph")
	opts.dryRun = true

	err := newCLI(&stdout, &stderr).runGen(context.Background(), opts)
	require.NoError(t, err)

	golden, err := os.ReadFile(filepath.Join(moduleRoot, "examples", "graph", "clone_gen.go"))
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "clone_gen.go <==")
	assert.Contains(t, stdout.String(), string(golden))
}

func TestCheck_Valid(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages")
	}

	var stdout, stderr bytes.Buffer

	err := newCLI(&stdout, &stderr).runCheck(testOptions("./examples/shapes"))
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "3 type(s) resolved, 0 skipped")
}

func TestCheck_Invalid(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages")
	}

	var stdout, stderr bytes.Buffer

	err := newCLI(&stdout, &stderr).runCheck(testOptions("./examples/invalid"))
	require.Error(t, err)

	assert.True(t, goerrors.HasCode(err, codeValidationFailed))
	assert.Contains(t, err.Error(), "clonegen/examples/invalid.Broken")
	assert.Contains(t, stdout.String(), "3 type(s) resolved")
	assert.Contains(t, stderr.String(), "error: ")
	assert.Contains(t, stderr.String(), "[uncloneable-owned]")
}

func TestExplain_Formats(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages")
	}

	t.Run("table", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		err := newCLI(&stdout, &stderr).runExplain(testOptions("./examples/shapes"))
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "=== clonegen/examples/shapes.Circle ===")
		assert.Contains(t, stdout.String(), "base: clonegen/examples/shapes.Figure")
	})

	t.Run("yaml", func(t *testing.T) {
		var stdout, stderr bytes.Buffer

		opts := testOptions("./examples/shapes")
		opts.format = formatYAML

		err := newCLI(&stdout, &stderr).runExplain(opts)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "type: clonegen/examples/shapes.Polygon")
		assert.Contains(t, stdout.String(), "returns: Shape")
	})
}

func TestExplain_UnknownFormat(t *testing.T) {
	var stdout, stderr bytes.Buffer

	opts := testOptions("./examples/shapes")
	opts.format = "json"

	err := newCLI(&stdout, &stderr).runExplain(opts)
	require.Error(t, err)
	assert.True(t, goerrors.HasCode(err, codeConfigInvalid))
	assert.Empty(t, stdout.String())
}

func TestResolve_NoPackages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clonegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\n"), 0o600))

	var stdout, stderr bytes.Buffer

	err := newCLI(&stdout, &stderr).runCheck(options{configPath: path})
	require.Error(t, err)
	assert.True(t, goerrors.HasCode(err, codeConfigInvalid))
}

func TestResolve_MissingConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := newCLI(&stdout, &stderr).runCheck(options{
		configPath: filepath.Join(t.TempDir(), "absent.yaml"),
		packages:   []string{"./examples/graph"},
	})
	require.Error(t, err)
	assert.True(t, goerrors.HasCode(err, codeConfigInvalid))
}

func TestNewApp(t *testing.T) {
	app := newApp(newCLI(&bytes.Buffer{}, &bytes.Buffer{}))
	assert.NotNil(t, app)
}

func TestResolve_ErrorsKeepTheirCause(t *testing.T) {
	t.Run("load", func(t *testing.T) {
		if testing.Short() {
			t.Skip("loads packages")
		}

		var stdout, stderr bytes.Buffer

		err := newCLI(&stdout, &stderr).runCheck(testOptions("./examples/does-not-exist"))
		require.Error(t, err)
		assert.True(t, goerrors.HasCode(err, codeLoadFailed))
		assert.Contains(t, err.Error(), "loading packages: ")
		assert.Contains(t, err.Error(), "does-not-exist")
	})

	t.Run("config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "clonegen.yaml")
		require.NoError(t, os.WriteFile(path, []byte("unknown_key: 1\n"), 0o600))

		var stdout, stderr bytes.Buffer

		err := newCLI(&stdout, &stderr).runCheck(options{configPath: path})
		require.Error(t, err)
		assert.True(t, goerrors.HasCode(err, codeConfigInvalid))
		assert.Contains(t, err.Error(), "unknown_key")
	})
}

// writeModule lays out a throwaway module with a type whose generated code
// refers to the runtime package by an identifier that does not parse.
func writeModule(t *testing.T) options {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"go.mod": "module example.com/tree\n\ngo 1.25\n",
		"tree.go": "package tree\n\n//clonegen:generate\ntype Tree struct {\n\tKids []*Tree `clone:\"child\"`\n}\n",
		"clonegen.yaml": "version: \"1\"\npackages: [.]\nruntime: example.com/go-clone\n",
	}

	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}

	return options{configPath: filepath.Join(dir, "clonegen.yaml"), dir: dir}
}

func TestGen_DebugKeepsUnformattedOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("loads packages")
	}

	for _, debug := range []bool{false, true} {
		opts := writeModule(t)
		opts.debug = debug

		var stdout, stderr bytes.Buffer

		err := newCLI(&stdout, &stderr).runGen(context.Background(), opts)
		require.Error(t, err)
		assert.True(t, goerrors.HasCode(err, codeGenerationFailed))
		assert.Contains(t, err.Error(), "formatting code")

		sidecar := filepath.Join(opts.dir, "clone_gen.unformatted.go")
		if debug {
			assert.FileExists(t, sidecar)
		} else {
			assert.NoFileExists(t, sidecar)
		}

		assert.NoFileExists(t, filepath.Join(opts.dir, "clone_gen.go"))
	}
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clonegen.yaml")

	var stdout, stderr bytes.Buffer

	c := newCLI(&stdout, &stderr)
	require.NoError(t, c.runInit(options{configPath: path}))
	assert.Contains(t, stdout.String(), "wrote "+path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./..."}, cfg.Packages)
	assert.Equal(t, "clone_gen.go", cfg.Output)

	err = c.runInit(options{configPath: path})
	require.Error(t, err)
	assert.True(t, goerrors.HasCode(err, codeConfigInvalid))
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, c.runInit(options{configPath: path, force: true}))
}
