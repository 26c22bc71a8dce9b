package a

// Handle cannot be copied.
type Handle struct {
	fd int
}

// Item has a hand-written Clone.
type Item struct {
	N int
}

func (i *Item) Clone() *Item {
	c := *i
	return &c
}

// Base is embedded by types of other packages.
//
//clonegen:generate
type Base struct { // want Base:"participant"
	Name  string
	Items []*Item `clone:"child"`
}

// Broken owns a value it cannot clone.
//
//clonegen:generate
type Broken struct {
	Res *Handle `clone:"child"` // want `error: Broken.Res: \[uncloneable-owned\] type \*Handle of owned field cannot be cloned: no Clone\(\) method`
}

// Loose leaves its references unmarked.
//
//clonegen:generate
type Loose struct { // want Loose:"participant"
	Data []byte // want `suggestion: Loose.Data: \[unclassified\] field of type \[\]byte has no clone marker`
	Ptr  *Item  // want `warning: Loose.Ptr: \[unclassified\] field of type \*Item has no clone marker`
}

// Count is not a struct.
//
//clonegen:generate
type Count int // want `error: \[Count\]: \[not-a-struct\] Count is not a struct type`

// Sliced inherits Base's Clone without taking part.
type Sliced struct { // want `warning: \[Sliced\]: \[sliced-clone\] Sliced embeds cloneable Base`
	Base
}
