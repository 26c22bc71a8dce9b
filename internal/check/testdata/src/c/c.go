package c

//clonegen:generate
type Node struct { // want Node:"participant"
	Name string
	Next *Node `clone:"child"`
}

// Copy uses the generated method.
func Copy(n *Node) *Node {
	return n.Clone()
}

// Manual asks for methods it already has.
//
//clonegen:generate
type Manual struct { // want `error: \[Manual\]: \[method-conflict\] Manual already declares Clone;`
	N int
}

func (m *Manual) Clone() *Manual {
	c := *m
	return &c
}
