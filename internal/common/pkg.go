package common

import "path"

// PkgAlias returns the default name a package is referred to by: the last
// element of its import path. Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}
