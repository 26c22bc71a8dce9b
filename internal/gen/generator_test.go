package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clonegen/internal/analyze"
	"clonegen/internal/plan"
)

func resolveExample(t *testing.T, names ...string) *plan.ClonePlan {
	t.Helper()

	loader := analyze.NewLoader(analyze.DefaultOptions())
	loader.Dir = filepath.Join("..", "..")
	loader.Generated = DefaultGeneratorConfig().Filename

	var patterns []string
	for _, name := range names {
		patterns = append(patterns, "./examples/"+name)
	}

	graph, err := loader.LoadPackages(patterns...)
	require.NoError(t, err)

	p, err := plan.NewResolver(graph, plan.DefaultConfig(), nil).Resolve()
	require.NoError(t, err)

	return p
}

func TestGenerator_MatchesCommittedExamples(t *testing.T) {
	for _, name := range []string{"graph", "shapes", "document", "invalid", "registry"} {
		t.Run(name, func(t *testing.T) {
			p := resolveExample(t, name)

			files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
			require.NoError(t, err)
			require.Len(t, files, 1, spew.Sdump(p.Diagnostics))

			want, err := os.ReadFile(filepath.Join("..", "..", "examples", name, "clone_gen.go"))
			require.NoError(t, err)

			assert.Equal(t, string(want), string(files[0].Content))
			assert.Equal(t, "clonegen/examples/"+name, files[0].PkgPath)
			assert.Equal(t, "clone_gen.go", filepath.Base(files[0].Path()))
		})
	}
}

func TestGenerator_OneFilePerPackageInPathOrder(t *testing.T) {
	p := resolveExample(t, "shapes", "graph")

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, "clonegen/examples/graph", files[0].PkgPath)
	assert.Equal(t, "clonegen/examples/shapes", files[1].PkgPath)
}

func TestGenerator_ChainsBaseBeforeOwnedFieldsAndHookLast(t *testing.T) {
	p := resolveExample(t, "shapes", "document")

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 2)

	doc := string(files[0].Content)
	assert.Contains(t, doc, "func (d *Document) Clone() *Document {")
	assert.Contains(t, doc, "\td.Meta = d.Meta.Clone()\n")
	assert.Contains(t, doc, "\td.AfterClone()\n}")

	shapes := string(files[1].Content)
	assert.Contains(t, shapes, "func (c *Circle) Clone() Shape {")
	assert.Contains(t, shapes, "func (c *Circle) FixOwnedFields() {\n\tc.Figure.FixOwnedFields()\n\tif c.Center != nil {")
}

func TestGenerator_SkippedTypesGetNoMethods(t *testing.T) {
	p := resolveExample(t, "invalid")

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	content := string(files[0].Content)
	assert.NotContains(t, content, "Broken")
	assert.NotContains(t, content, "Derived")
	assert.NotContains(t, content, "import")
}

func TestGenerator_CustomFilenameAndRuntime(t *testing.T) {
	p := resolveExample(t, "graph")

	files, err := NewGenerator(GeneratorConfig{
		Filename:       "zz_clone.go",
		RuntimePackage: "example.com/lib/graph",
	}).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	content := string(files[0].Content)
	assert.Equal(t, "zz_clone.go", files[0].Filename)
	assert.Contains(t, content, `import graphrt "example.com/lib/graph"`)
	assert.Contains(t, content, "n.Children = graphrt.Slice(n.Children)")
}

func TestGenerator_Obsolete(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "clone_gen.go")
	require.NoError(t, os.WriteFile(stale, []byte("package stale\n"), 0o644))

	graph := analyze.NewTypeGraph()
	graph.Packages["example.com/stale"] = &analyze.PackageInfo{Path: "example.com/stale", Name: "stale", Dir: dir}
	graph.Packages["example.com/empty"] = &analyze.PackageInfo{Path: "example.com/empty", Name: "empty", Dir: t.TempDir()}

	g := NewGenerator(DefaultGeneratorConfig())
	obsolete := g.Obsolete(&plan.ClonePlan{TypeGraph: graph})
	assert.Equal(t, []string{stale}, obsolete)

	require.NoError(t, RemoveFiles(obsolete))
	require.NoError(t, RemoveFiles(obsolete))
	assert.NoFileExists(t, stale)
}

func TestReceiverName(t *testing.T) {
	assert.Equal(t, "n", receiverName("Node"))
	assert.Equal(t, "é", receiverName("Élan"))
	assert.Equal(t, "x", receiverName("_hidden"))
}

func TestOwnedStatement(t *testing.T) {
	field := &analyze.FieldDescriptor{Name: "F"}

	tests := []struct {
		name string
		of   plan.OwnedField
		want string
	}{
		{"direct value", plan.OwnedField{Field: field, Strategy: plan.StrategyDirect}, "r.F = r.F.Clone()"},
		{
			"direct nilable",
			plan.OwnedField{Field: field, Strategy: plan.StrategyDirect, Nilable: true},
			"if r.F != nil {\n\t\tr.F = r.F.Clone()\n\t}",
		},
		{"slice", plan.OwnedField{Field: field, Strategy: plan.StrategySlice, Nilable: true}, "r.F = clone.Slice(r.F)"},
		{"map", plan.OwnedField{Field: field, Strategy: plan.StrategyMap, Nilable: true}, "r.F = clone.Map(r.F)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ownedStatement("r", tt.of, "clone"))
		})
	}
}

func TestGenerator_InheritedReturns(t *testing.T) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "p.go", `package p

type Shape interface {
	Clone() Shape
}

//clonegen:generate returns=Shape
type Base struct{}

//clonegen:generate
type Square struct {
	Base
	Side float64
}
`, parser.ParseComments)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("example.com/p", fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	a := analyze.NewAnalyzer(analyze.DefaultOptions())
	a.AddPackage(pkg, []*ast.File{file}, fset, t.TempDir())
	a.Link()

	p, err := plan.NewResolver(a.Graph(), plan.DefaultConfig(), nil).Resolve()
	require.NoError(t, err)
	require.Empty(t, p.Skipped, spew.Sdump(p.Diagnostics))

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(p)
	require.NoError(t, err)
	require.Len(t, files, 1)

	content := string(files[0].Content)
	assert.Contains(t, content, "func (b *Base) Clone() Shape {")
	assert.Contains(t, content, "func (s *Square) Clone() Shape {")
	assert.Contains(t, content, "func (s *Square) FixOwnedFields() {\n\ts.Base.FixOwnedFields()\n}")
}
