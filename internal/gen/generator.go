package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"golang.org/x/tools/imports"

	"clonegen/internal/analyze"
	"clonegen/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file written into every package.
	Filename string
	// RuntimePackage is the import path of the clone runtime package.
	RuntimePackage string
	// DebugUnformatted writes the raw template output next to the intended
	// file when it cannot be formatted.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:       "clone_gen.go",
		RuntimePackage: "clonegen/clone",
	}
}

// Generator generates Clone and FixOwnedFields methods from a clone plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	def := DefaultGeneratorConfig()
	if config.Filename == "" {
		config.Filename = def.Filename
	}

	if config.RuntimePackage == "" {
		config.RuntimePackage = def.RuntimePackage
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// PkgPath is the import path of the package the file belongs to.
	PkgPath string
	// Dir is the package directory.
	Dir string
	// Filename is the name of the file (e.g., "clone_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the path the file is written to.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate generates one file per package holding resolved types. Packages
// are processed in import path order and types in plan order, so the output
// only changes when the plan does.
func (g *Generator) Generate(p *plan.ClonePlan) ([]GeneratedFile, error) {
	byPkg := make(map[string][]*plan.ResolvedType)

	var paths []string

	for i := range p.Types {
		rt := &p.Types[i]

		path := rt.Type.ID.PkgPath
		if _, ok := byPkg[path]; !ok {
			paths = append(paths, path)
		}

		byPkg[path] = append(byPkg[path], rt)
	}

	slices.Sort(paths)

	files := make([]GeneratedFile, 0, len(paths))

	for _, path := range paths {
		pkg := p.TypeGraph.Packages[path]
		if pkg == nil {
			return nil, fmt.Errorf("package %s is not part of the type graph", path)
		}

		file, err := g.generatePackage(pkg, byPkg[path])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// Obsolete returns the generated files left in packages that no longer hold
// any resolved type. Their methods would belong to types that are now
// skipped.
func (g *Generator) Obsolete(p *plan.ClonePlan) []string {
	live := make(map[string]bool)
	for _, rt := range p.Types {
		live[rt.Type.ID.PkgPath] = true
	}

	var out []string

	for path, pkg := range p.TypeGraph.Packages {
		if live[path] || pkg.Dir == "" {
			continue
		}

		name := filepath.Join(pkg.Dir, g.config.Filename)
		if _, err := os.Stat(name); err == nil {
			out = append(out, name)
		}
	}

	slices.Sort(out)

	return out
}

func (g *Generator) generatePackage(pkg *analyze.PackageInfo, types []*plan.ResolvedType) (*GeneratedFile, error) {
	data := g.buildTemplateData(pkg, types)

	var buf bytes.Buffer
	if err := cloneTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	file := &GeneratedFile{
		PkgPath:  pkg.Path,
		Dir:      pkg.Dir,
		Filename: g.config.Filename,
	}

	formatted, err := imports.Process(file.Path(), buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(pkg.Dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w", err)
	}

	file.Content = formatted

	return file, nil
}

// RemoveFiles deletes the given files. Files that are already gone are not
// an error.
func RemoveFiles(paths []string) error {
	var errs []error

	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("removing %s: %w", path, err))
		}
	}

	return errors.Join(errs...)
}
