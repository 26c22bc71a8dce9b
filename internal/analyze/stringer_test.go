package analyze

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypePath(t *testing.T) {
	p := NewTypePath("Graph")
	assert.Equal(t, "Graph", p.String())

	nodes := p.Field("Nodes")
	assert.Equal(t, "Graph.Nodes", nodes.String())
	assert.Equal(t, "Graph", p.String(), "Field does not modify the receiver")
	assert.Equal(t, "Graph.Nodes.Next", nodes.Field("Next").String())
}

func TestTypeStringer_TypeString(t *testing.T) {
	g := checkSource(t, DefaultOptions(), `package p

import "time"

type Node struct {
	Next  *Node
	Kids  []*Node
	When  time.Time
	Index map[string]*Node
}
`)

	node := typeOf(t, g, "Node")
	local := NewTypeStringer(node.Named.Obj().Pkg())
	foreign := NewTypeStringer(nil)

	assert.Equal(t, "*Node", local.TypeString(fieldOf(t, node, "Next").Type))
	assert.Equal(t, "[]*Node", local.TypeString(fieldOf(t, node, "Kids").Type))
	assert.Equal(t, "time.Time", local.TypeString(fieldOf(t, node, "When").Type))
	assert.Equal(t, "map[string]*Node", local.TypeString(fieldOf(t, node, "Index").Type))

	assert.Equal(t, "*p.Node", foreign.TypeString(fieldOf(t, node, "Next").Type))
	assert.Equal(t, "<nil>", foreign.TypeString(nil))
	assert.Equal(t, "int", foreign.TypeString(types.Typ[types.Int]))
}

func TestTypeStringer_InheritedFields(t *testing.T) {
	g := checkSource(t, DefaultOptions(), `package p

//clonegen:generate
type Figure struct {
	Name   string
	Origin *int
}

//clonegen:generate
type Circle struct {
	Figure
	Radius int
}

//clonegen:generate
type Ring struct {
	Circle
	Inner int
}
`)

	ts := NewTypeStringer(nil)

	assert.Equal(t, "Circle.Figure.Name", ts.FieldPath("Circle", "Figure", "Name"))
	assert.Nil(t, ts.InheritedFields(nil))

	assert.Equal(t, []string{"Figure.Name", "Figure.Origin"},
		ts.InheritedFields(typeOf(t, g, "Figure")))

	ring := typeOf(t, g, "Ring")
	require.NotNil(t, ring.Base)

	assert.Equal(t, []string{
		"Ring.Circle.Figure.Name",
		"Ring.Circle.Figure.Origin",
		"Ring.Circle.Radius",
		"Ring.Inner",
	}, ts.InheritedFields(ring))
}
