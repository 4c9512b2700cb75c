package goload

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"reflect"
	"strings"

	"dynadoc/internal/annotation"
)

const (
	// DocTag is the struct tag holding a field description.
	DocTag = "doc"
	// OptionsTag is the struct tag holding comma-separated documentation options.
	OptionsTag = "dynadoc"
	// directivePrefix starts a documentation directive comment line.
	directivePrefix = "//dynadoc:"
)

// docIndex maps declared identifiers to their comment groups.
type docIndex struct {
	pkg   string
	byPos map[token.Pos]*ast.CommentGroup
}

func indexDocs(files []*ast.File) docIndex {
	idx := docIndex{byPos: make(map[token.Pos]*ast.CommentGroup)}

	for _, file := range files {
		if idx.pkg == "" && file.Doc != nil {
			idx.pkg = strings.TrimSpace(file.Doc.Text())
		}

		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				idx.add(d.Name, d.Doc)
			case *ast.GenDecl:
				idx.genDecl(d)
			}
		}
	}

	return idx
}

func (idx docIndex) add(name *ast.Ident, groups ...*ast.CommentGroup) {
	for _, group := range groups {
		if group != nil {
			idx.byPos[name.Pos()] = group
			return
		}
	}
}

func (idx docIndex) genDecl(d *ast.GenDecl) {
	var shared *ast.CommentGroup
	if len(d.Specs) == 1 {
		shared = d.Doc
	}

	for _, spec := range d.Specs {
		switch s := spec.(type) {
		case *ast.TypeSpec:
			idx.add(s.Name, s.Doc, shared, s.Comment)
			idx.typeExpr(s.Type)
		case *ast.ValueSpec:
			for _, name := range s.Names {
				idx.add(name, s.Doc, shared, s.Comment)
			}
		}
	}
}

func (idx docIndex) typeExpr(expr ast.Expr) {
	var fields *ast.FieldList

	switch t := expr.(type) {
	case *ast.StructType:
		fields = t.Fields
	case *ast.InterfaceType:
		fields = t.Methods
	default:
		return
	}

	for _, field := range fields.List {
		for _, name := range field.Names {
			idx.add(name, field.Doc, field.Comment)
		}
	}
}

// text returns the documentation of the identifier declared at pos.
func (idx docIndex) text(pos token.Pos) string {
	group := idx.byPos[pos]
	if group == nil {
		return ""
	}

	return strings.TrimSpace(group.Text())
}

// directives returns the arguments of the //dynadoc: lines attached to the
// identifier declared at pos.
func (idx docIndex) directives(pos token.Pos) []string {
	group := idx.byPos[pos]
	if group == nil {
		return nil
	}

	var out []string

	for _, c := range group.List {
		if rest, ok := strings.CutPrefix(c.Text, directivePrefix); ok {
			out = append(out, strings.TrimSpace(rest))
		}
	}

	return out
}

// tagMarkers returns the markers declared by the doc and dynadoc tags.
//
// Options:
//   - conceal, reveal, "-" (conceal)
//   - accept, suppress, surrogate=TEXT
//   - findex=NAME
//
// Malformed options are reported in the error while the markers of the
// remaining options are still returned.
func tagMarkers(tag reflect.StructTag) ([]annotation.Marker, error) {
	var (
		markers []annotation.Marker
		errs    []error
	)

	if text := tag.Get(DocTag); text != "" {
		markers = append(markers, annotation.Doc{Documentation: text})
	}

	options := tag.Get(OptionsTag)
	if options == "" {
		return markers, nil
	}

	for _, option := range strings.Split(options, ",") {
		key, value, _ := strings.Cut(strings.TrimSpace(option), "=")

		switch key {
		case "conceal", "-":
			markers = append(markers, annotation.VisibilityConceal)
		case "reveal":
			markers = append(markers, annotation.VisibilityReveal)
		case "accept":
			markers = append(markers, annotation.AcceptDefault)
		case "suppress":
			markers = append(markers, annotation.SuppressDefault)
		case "surrogate":
			markers = append(markers, annotation.SurrogateDefault(value))
		case "findex":
			if value == "" {
				errs = append(errs, fmt.Errorf("option %q needs a fragment name", key))
				continue
			}

			markers = append(markers, annotation.Findex{Name: value})
		case "":
		default:
			errs = append(errs, fmt.Errorf("unknown option %q", key))
		}
	}

	return markers, errors.Join(errs...)
}

// wrap attaches markers to e when there are any.
func wrap(e annotation.Expr, markers []annotation.Marker) annotation.Expr {
	if len(markers) == 0 {
		return e
	}

	return annotation.Annotate(e, markers...)
}
