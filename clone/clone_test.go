package clone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaf struct {
	Value int
}

func (l *leaf) Clone() *leaf {
	if l == nil {
		return nil
	}

	out := *l

	return &out
}

func TestSlice_DeepCopy(t *testing.T) {
	in := []*leaf{{Value: 1}, nil, {Value: 3}}

	out := Slice(in)
	require.Len(t, out, 3)

	assert.Equal(t, 1, out[0].Value)
	assert.Nil(t, out[1])
	assert.Equal(t, 3, out[2].Value)

	assert.NotSame(t, in[0], out[0])
	assert.NotSame(t, in[2], out[2])

	out[0].Value = 100
	assert.Equal(t, 1, in[0].Value)
}

func TestSlice_Nil(t *testing.T) {
	var in []*leaf
	assert.Nil(t, Slice(in))

	empty := []*leaf{}
	out := Slice(empty)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestSlice_NamedSliceType(t *testing.T) {
	type leaves []*leaf

	in := leaves{{Value: 7}}
	out := Slice(in)

	assert.IsType(t, leaves{}, out)
	assert.NotSame(t, in[0], out[0])
}

func TestMap_DeepCopy(t *testing.T) {
	in := map[string]*leaf{
		"a": {Value: 1},
		"b": nil,
	}

	out := Map(in)
	require.Len(t, out, 2)

	assert.Equal(t, 1, out["a"].Value)
	assert.NotSame(t, in["a"], out["a"])

	v, ok := out["b"]
	assert.True(t, ok, "absent value keeps its key")
	assert.Nil(t, v)

	out["a"].Value = 2
	assert.Equal(t, 1, in["a"].Value)
}

func TestMap_Nil(t *testing.T) {
	var in map[int]*leaf
	assert.Nil(t, Map(in))
}

type shape interface {
	Clone() shape
	Area() int
}

type square struct {
	side int
}

func (s *square) Clone() shape {
	out := *s

	return &out
}

func (s *square) Area() int { return s.side * s.side }

func TestSlice_InterfaceElements(t *testing.T) {
	in := []shape{&square{side: 2}, nil}

	out := Slice(in)
	require.Len(t, out, 2)

	assert.Equal(t, 4, out[0].Area())
	assert.NotSame(t, in[0].(*square), out[0].(*square))
	assert.Nil(t, out[1])
}
