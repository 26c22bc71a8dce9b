package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles(t *testing.T) {
	root := t.TempDir()

	files := []GeneratedFile{
		{Dir: filepath.Join(root, "a"), Filename: "clone_gen.go", Content: []byte("package a\n")},
		{Dir: filepath.Join(root, "b", "c"), Filename: "clone_gen.go", Content: []byte("package c\n")},
	}

	require.NoError(t, WriteFiles(t.Context(), files))

	for _, f := range files {
		got, err := os.ReadFile(f.Path())
		require.NoError(t, err)
		assert.Equal(t, f.Content, got)
	}
}

func TestWriteFiles_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	dir := t.TempDir()
	err := WriteFiles(ctx, []GeneratedFile{{Dir: dir, Filename: "clone_gen.go"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, filepath.Join(dir, "clone_gen.go"))
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "clone_gen.go", []byte("package x\nfunc {")))

	got, err := os.ReadFile(filepath.Join(dir, "clone_gen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "//go:build clonegen_debug\n\npackage x\nfunc {", string(got))

	require.NoError(t, writeDebugUnformatted("", "clone_gen.go", nil))
}
