package render

import (
	"strings"

	"dynadoc/internal/annotation"
	"dynadoc/internal/common"
)

// formatter writes annotations for one rendering pass.
type formatter struct {
	style   Style
	globals map[string]annotation.Expr
	// pkgPath is the package of the documented object; its names stay unqualified.
	pkgPath string
	active  map[annotation.Expr]struct{}
}

func newFormatter(style Style, globals map[string]annotation.Expr, pkgPath string) *formatter {
	return &formatter{
		style:   style,
		globals: globals,
		pkgPath: pkgPath,
		active:  make(map[annotation.Expr]struct{}),
	}
}

// FormatAnnotation returns the reStructuredText form of e. Names which are
// builtin or visible in globals are left unqualified.
func FormatAnnotation(e annotation.Expr, style Style, globals map[string]annotation.Expr) string {
	return newFormatter(style, globals, "").format(e)
}

func (f *formatter) format(e annotation.Expr) string {
	if e == nil {
		return common.UnknownStr
	}

	if annotation.IsEllipsis(e) {
		return "..."
	}

	if _, ok := f.active[e]; ok {
		return "..."
	}

	f.active[e] = struct{}{}
	defer delete(f.active, e)

	switch x := e.(type) {
	case *annotation.Type:
		return f.qualify(x.PkgPath, x.Name)

	case *annotation.Origin:
		return f.qualify(x.PkgPath, x.Name)

	case *annotation.TypeVar:
		return x.Name

	case *annotation.Forward:
		return x.Name

	case *annotation.Union:
		return f.join(x.Alternatives, " | ")

	case *annotation.Literal:
		values := make([]string, 0, len(x.Values))
		for _, v := range x.Values {
			values = append(values, Repr(v))
		}

		return f.style.delimit("[]", "Literal", strings.Join(values, ", "))

	case *annotation.ParamList:
		return f.style.delimit("[]", "", f.join(x.Items, ", "))

	case *annotation.Callable:
		params := "..."
		if x.Params != nil {
			params = f.format(x.Params)
		}

		return f.style.delimit("[]", "Callable", params+", "+f.format(x.Return))

	case *annotation.Annotated:
		return f.format(x.Inner)

	case *annotation.Generic:
		name := f.qualify(x.Origin.PkgPath, x.Origin.Name)
		if len(x.Args) == 0 {
			return name
		}

		return f.style.delimit("[]", name, f.join(x.Args, ", "))

	default:
		return e.String()
	}
}

func (f *formatter) join(items []annotation.Expr, sep string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, f.format(item))
	}

	return strings.Join(parts, sep)
}

// qualify prefixes name with its package alias unless the name is builtin,
// belongs to the documented package or is visible in the invoker globals.
func (f *formatter) qualify(pkgPath, name string) string {
	if pkgPath == "" || pkgPath == f.pkgPath {
		return name
	}

	head, _, _ := strings.Cut(name, ".")
	if _, ok := f.globals[head]; ok {
		return name
	}

	return common.PkgAlias(pkgPath) + "." + name
}

// Repr renders a value the way it would be written as a literal.
func Repr(v any) string {
	if e, ok := v.(annotation.Expr); ok {
		return annotation.Format(e)
	}

	return annotation.LiteralText(v)
}
