package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comments(lines ...string) *ast.CommentGroup {
	cg := &ast.CommentGroup{}
	for _, l := range lines {
		cg.List = append(cg.List, &ast.Comment{Text: l})
	}

	return cg
}

func TestParseDirective(t *testing.T) {
	tests := []struct {
		name  string
		doc   *ast.CommentGroup
		found bool
		want  DirectiveOptions
	}{
		{name: "nil doc"},
		{name: "plain doc", doc: comments("// Node is a node.")},
		{name: "bare", doc: comments("//clonegen:generate"), found: true},
		{
			name:  "after prose",
			doc:   comments("// Shape is drawable.", "//", "//clonegen:generate returns=Shape"),
			found: true,
			want:  DirectiveOptions{Returns: "Shape"},
		},
		{
			name:  "unknown options",
			doc:   comments("//clonegen:generate verbose returns=I\tdeep=1"),
			found: true,
			want:  DirectiveOptions{Returns: "I", Unknown: []string{"verbose", "deep=1"}},
		},
		{name: "longer word", doc: comments("//clonegen:generated")},
		{name: "space after slashes", doc: comments("// clonegen:generate")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ParseDirective(tt.doc)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTypeDocs(t *testing.T) {
	src := `package p

// A doc.
type A struct{}

type (
	// B doc.
	B struct{}
	C int
)

// Grouped doc is not any one type's.
type (
	D struct{}
)

func f() {
	type local struct{}
}
`

	file, err := parser.ParseFile(token.NewFileSet(), "p.go", src, parser.ParseComments)
	require.NoError(t, err)

	docs, order := typeDocs([]*ast.File{file})

	assert.Equal(t, []string{"A", "B", "C", "D"}, order)
	assert.Equal(t, "A doc.\n", docs["A"].Text())
	assert.Equal(t, "B doc.\n", docs["B"].Text())
	assert.Nil(t, docs["C"])
	assert.Nil(t, docs["D"])
	assert.NotContains(t, docs, "local")
}
