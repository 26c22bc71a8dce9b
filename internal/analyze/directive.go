package analyze

import (
	"go/ast"
	"strings"
)

// DirectivePrefix marks a type for clone generation when it appears as a line
// of the type's doc comment.
const DirectivePrefix = "//clonegen:generate"

// DirectiveOptions holds the raw key=value options of a directive line.
type DirectiveOptions struct {
	Returns string
	// Unknown lists options the directive does not recognize.
	Unknown []string
}

// ParseDirective looks for the generate directive in a doc comment.
// It returns the parsed options and whether the directive was found.
func ParseDirective(doc *ast.CommentGroup) (DirectiveOptions, bool) {
	if doc == nil {
		return DirectiveOptions{}, false
	}

	for _, c := range doc.List {
		rest, ok := strings.CutPrefix(c.Text, DirectivePrefix)
		if !ok {
			continue
		}

		// "//clonegen:generated" is not our directive.
		if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
			continue
		}

		return parseDirectiveOptions(rest), true
	}

	return DirectiveOptions{}, false
}

func parseDirectiveOptions(s string) DirectiveOptions {
	var opts DirectiveOptions

	for _, field := range strings.Fields(s) {
		key, value, _ := strings.Cut(field, "=")

		switch key {
		case "returns":
			opts.Returns = value
		default:
			opts.Unknown = append(opts.Unknown, field)
		}
	}

	return opts
}

// typeDocs maps the top-level type names of files to their doc comments.
// A type declared alone (without parentheses) uses the declaration's doc.
func typeDocs(files []*ast.File) (map[string]*ast.CommentGroup, []string) {
	docs := make(map[string]*ast.CommentGroup)

	var order []string

	for _, file := range files {
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}

			for _, spec := range gd.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && !gd.Lparen.IsValid() {
					doc = gd.Doc
				}

				docs[ts.Name.Name] = doc
				order = append(order, ts.Name.Name)
			}
		}
	}

	return docs, order
}
