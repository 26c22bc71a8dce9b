package b

import "a"

// Derived chains to a base from another package.
//
//clonegen:generate
type Derived struct { // want Derived:"participant"
	a.Base
	Extra *a.Item `clone:"child"`
}

// Plain embeds the base without taking part.
type Plain struct { // want `warning: \[Plain\]: \[sliced-clone\] Plain embeds cloneable Base`
	a.Base
}

// Fancy cannot chain to two bases.
//
//clonegen:generate
type Fancy struct { // want `error: \[Fancy\]: \[multiple-bases\] Fancy embeds more than one cloneable type \(Base, Derived\)`
	a.Base
	Derived // want `suggestion: Fancy.Derived: \[unclassified\] field of type Derived has no clone marker`
}
