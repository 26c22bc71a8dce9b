package analyze

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Loader loads Go packages and builds a type graph.
type Loader struct {
	// Dir is the directory patterns are resolved against. Empty means the
	// current directory.
	Dir string
	// Generated is the name of the files clonegen writes. Protocol methods in
	// such files are not taken for hand-written ones, and when the packages do
	// not type-check as they are, those files are masked out so that stale
	// output never prevents regeneration. Empty loads every file as is.
	Generated string
	opts      Options
}

// NewLoader creates a new Loader.
func NewLoader(opts Options) *Loader {
	return &Loader{opts: opts}
}

// missingMethod matches the type errors hand-written code gets while the
// generated methods it calls are masked out.
var missingMethod = regexp.MustCompile(`(no field or method|missing method) (` + CloneMethod + `|` + FixMethod + `)\b`)

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./examples/graph", "clonegen/examples/shapes").
func (l *Loader) LoadPackages(patterns ...string) (*TypeGraph, error) {
	pkgs, err := l.load(patterns, nil)
	if err != nil {
		return nil, err
	}

	if errs := packageErrors(pkgs, false); len(errs) > 0 {
		if l.Generated == "" {
			return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
		}

		// Previously generated files may be out of date with the types they
		// belong to. Retry without them; code calling the generated methods
		// is then expected to miss them.
		overlay, err := l.overlay(pkgs)
		if err != nil {
			return nil, err
		}

		if pkgs, err = l.load(patterns, overlay); err != nil {
			return nil, err
		}

		if errs := packageErrors(pkgs, true); len(errs) > 0 {
			return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
		}
	}

	opts := l.opts
	opts.Generated = l.Generated

	analyzer := NewAnalyzer(opts)
	for _, pkg := range pkgs {
		analyzer.AddPackage(pkg.Types, pkg.Syntax, pkg.Fset, packageDir(pkg))
	}

	analyzer.Link()

	return analyzer.Graph(), nil
}

func (l *Loader) load(patterns []string, overlay map[string][]byte) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Dir:     l.Dir,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	return pkgs, nil
}

// packageErrors collects the errors of the loaded packages. With masked set,
// type errors about missing protocol methods are left out.
func packageErrors(pkgs []*packages.Package, masked bool) []error {
	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if masked && e.Kind == packages.TypeError && missingMethod.MatchString(e.Msg) {
				continue
			}

			errs = append(errs, e)
		}
	}

	return errs
}

// overlay replaces the previously generated files of the packages with an
// empty file of the same package.
func (l *Loader) overlay(pkgs []*packages.Package) (map[string][]byte, error) {
	overlay := make(map[string][]byte)

	for _, pkg := range pkgs {
		for _, file := range pkg.GoFiles {
			if filepath.Base(file) == l.Generated {
				overlay[file] = []byte("package " + pkg.Name + "\n")
			}
		}
	}

	if len(overlay) == 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(packageErrors(pkgs, false)...))
	}

	return overlay, nil
}

// packageDir returns the directory of the package's first Go file.
func packageDir(pkg *packages.Package) string {
	if len(pkg.GoFiles) == 0 {
		return ""
	}

	return filepath.Dir(pkg.GoFiles[0])
}
