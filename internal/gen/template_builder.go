package gen

import (
	"fmt"
	"text/template"
	"unicode"
	"unicode/utf8"

	"clonegen/internal/analyze"
	"clonegen/internal/common"
	"clonegen/internal/plan"
)

// templateData holds all data needed for the clone template.
type templateData struct {
	PackageName string
	Imports     []importSpec
	Types       []typeData
}

// importSpec is one import line of the generated file.
type importSpec struct {
	Alias string
	Path  string
}

// typeData holds the methods generated for one type.
type typeData struct {
	Name     string
	Receiver string
	// Result is the Clone result type as written in the package.
	Result string
	// Statements is the body of FixOwnedFields, one statement per entry.
	Statements []string
}

func (g *Generator) buildTemplateData(pkg *analyze.PackageInfo, types []*plan.ResolvedType) *templateData {
	data := &templateData{PackageName: pkg.Name}

	runtime := g.runtimeName(pkg.Name)
	usesRuntime := false

	for _, rt := range types {
		td := buildTypeData(rt, analyze.NewTypeStringer(pkg.Pkg), runtime)
		data.Types = append(data.Types, td)

		for _, of := range rt.Owned {
			if of.Strategy.UsesRuntime() {
				usesRuntime = true
			}
		}
	}

	if usesRuntime {
		spec := importSpec{Path: g.config.RuntimePackage}
		if runtime != common.PkgAlias(g.config.RuntimePackage) {
			spec.Alias = runtime
		}

		data.Imports = append(data.Imports, spec)
	}

	return data
}

// runtimeName picks the identifier the runtime package is referred to by,
// avoiding the name of the package being generated.
func (g *Generator) runtimeName(pkgName string) string {
	name := common.PkgAlias(g.config.RuntimePackage)
	if name == pkgName {
		name += "rt"
	}

	return name
}

func buildTypeData(rt *plan.ResolvedType, ts *analyze.TypeStringer, runtime string) typeData {
	desc := rt.Type
	recv := receiverName(desc.ID.Name)

	td := typeData{
		Name:     desc.ID.Name,
		Receiver: recv,
		Result:   ts.TypeString(desc.CloneResult()),
	}

	if desc.Base != nil {
		td.Statements = append(td.Statements,
			fmt.Sprintf("%s.%s.%s()", recv, desc.BaseField, analyze.FixMethod))
	}

	for _, of := range rt.Owned {
		td.Statements = append(td.Statements, ownedStatement(recv, of, runtime))
	}

	if desc.Hook != "" {
		td.Statements = append(td.Statements, fmt.Sprintf("%s.%s()", recv, desc.Hook))
	}

	return td
}

// ownedStatement returns the statement replacing one owned field with a clone
// of its value. Absent values stay absent.
func ownedStatement(recv string, of plan.OwnedField, runtime string) string {
	field := recv + "." + of.Field.Name

	switch of.Strategy {
	case plan.StrategySlice:
		return fmt.Sprintf("%s = %s.Slice(%s)", field, runtime, field)
	case plan.StrategyMap:
		return fmt.Sprintf("%s = %s.Map(%s)", field, runtime, field)
	}

	assign := fmt.Sprintf("%s = %s.%s()", field, field, analyze.CloneMethod)
	if !of.Nilable {
		return assign
	}

	return fmt.Sprintf("if %s != nil {\n\t\t%s\n\t}", field, assign)
}

// receiverName derives the receiver from the type name: its first letter,
// lower-cased.
func receiverName(typeName string) string {
	r, _ := utf8.DecodeRuneInString(typeName)
	if !unicode.IsLetter(r) {
		return "x"
	}

	return string(unicode.ToLower(r))
}

var cloneTemplate = template.Must(template.New("clone").Parse(`
{{- define "import"}}{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"{{end -}}
// Code generated by clonegen. DO NOT EDIT.

package {{.PackageName}}
{{- if eq (len .Imports) 1}}

import {{template "import" index .Imports 0}}
{{- else if .Imports}}

import (
{{- range .Imports}}
	{{template "import" .}}
{{- end}}
)
{{- end}}
{{range .Types}}
// Clone returns a deep copy of {{.Receiver}}: owned fields are cloned, every other field
// is copied as-is.
func ({{.Receiver}} *{{.Name}}) Clone() {{.Result}} {
	if {{.Receiver}} == nil {
		return nil
	}

	out := new({{.Name}})
	*out = *{{.Receiver}}
	out.FixOwnedFields()

	return out
}

// FixOwnedFields replaces the owned fields of {{.Receiver}} with clones of their values.
func ({{.Receiver}} *{{.Name}}) FixOwnedFields() {
{{- range .Statements}}
	{{.}}
{{- end}}
}
{{end}}`))
