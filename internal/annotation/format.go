package annotation

import (
	"fmt"
	"strings"
)

// Format returns a human-readable representation of an expression.
// Examples:
//   - "int" for a bare type
//   - "list[int]" for a generic application
//   - "int | None" for a union
//   - "Callable[[int, str], bool]" for a callable shape
//
// A node reached again while it is being formatted prints as "<cycle>".
func Format(e Expr) string {
	f := formatter{active: make(map[Expr]struct{})}

	var sb strings.Builder
	f.write(&sb, e)

	return sb.String()
}

type formatter struct {
	active map[Expr]struct{}
}

func (f *formatter) write(sb *strings.Builder, e Expr) {
	if e == nil {
		sb.WriteString("<absent>")
		return
	}

	if _, ok := f.active[e]; ok {
		sb.WriteString("<cycle>")
		return
	}

	f.active[e] = struct{}{}
	defer delete(f.active, e)

	switch x := e.(type) {
	case *Type:
		sb.WriteString(x.Name)

	case *TypeVar:
		sb.WriteString("~" + x.Name)

	case *Forward:
		sb.WriteString(quote(x.Name))

	case *Origin:
		sb.WriteString(x.Name)

	case *Generic:
		sb.WriteString(x.Origin.Name)
		sb.WriteString("[")
		f.writeList(sb, x.Args)
		sb.WriteString("]")

	case *Union:
		for i, alt := range x.Alternatives {
			if i > 0 {
				sb.WriteString(" | ")
			}

			f.write(sb, alt)
		}

	case *Literal:
		sb.WriteString("Literal[")

		for i, v := range x.Values {
			if i > 0 {
				sb.WriteString(", ")
			}

			sb.WriteString(LiteralText(v))
		}

		sb.WriteString("]")

	case *Annotated:
		sb.WriteString("Annotated[")
		f.write(sb, x.Inner)

		for _, m := range x.Extras {
			sb.WriteString(", ")
			sb.WriteString(m.String())
		}

		sb.WriteString("]")

	case *ParamList:
		sb.WriteString("[")
		f.writeList(sb, x.Items)
		sb.WriteString("]")

	case *Callable:
		sb.WriteString("Callable[")

		if x.Params == nil {
			sb.WriteString(Ellipsis.String())
		} else {
			f.write(sb, x.Params)
		}

		sb.WriteString(", ")
		f.write(sb, x.Return)
		sb.WriteString("]")

	default:
		sb.WriteString(e.String())
	}
}

func (f *formatter) writeList(sb *strings.Builder, items []Expr) {
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}

		f.write(sb, item)
	}
}

// LiteralText renders a literal value the way it would be written in an annotation.
func LiteralText(v any) string {
	switch x := v.(type) {
	case string:
		return quote(x)
	case nil:
		return "None"
	case bool:
		if x {
			return "True"
		}

		return "False"
	default:
		return fmt.Sprintf("%v", x)
	}
}
