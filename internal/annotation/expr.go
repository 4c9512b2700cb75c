package annotation

// Expr is a type expression.
//
// Implementations are pointer types so that an Expr compares by identity.
type Expr interface {
	String() string
	expr()
}

// Type is a bare named type, e.g. int or store.Order.
type Type struct {
	Name    string // e.g., "Order"
	PkgPath string // e.g., "dynadoc/store"; empty for builtins
}

// NewType creates a named type. Each call yields a distinct identity.
func NewType(pkgPath, name string) *Type {
	return &Type{Name: name, PkgPath: pkgPath}
}

// QualifiedName returns the package-qualified name of the type.
func (t *Type) QualifiedName() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

func (t *Type) String() string { return Format(t) }
func (*Type) expr()            {}

// TypeVar is a type variable, e.g. the T in List[T].
type TypeVar struct {
	Name string
}

func (v *TypeVar) String() string { return Format(v) }
func (*TypeVar) expr()            {}

type ellipsis struct {
	text string // non-empty so that the singleton has a unique address
}

func (e *ellipsis) String() string { return e.text }
func (*ellipsis) expr()            {}

// Generic is an origin applied to arguments, e.g. list[int].
//
// Args may refer back to the Generic itself.
type Generic struct {
	Origin *Origin
	Args   []Expr
}

func (g *Generic) String() string { return Format(g) }
func (*Generic) expr()            {}

// Union is a set of alternatives, e.g. int | str.
type Union struct {
	Alternatives []Expr
}

func (u *Union) String() string { return Format(u) }
func (*Union) expr()            {}

// Literal is a set of literal values. The values are data, not types.
type Literal struct {
	Values []any
}

// LiteralOf creates a literal expression.
func LiteralOf(values ...any) *Literal {
	return &Literal{Values: values}
}

func (l *Literal) String() string { return Format(l) }
func (*Literal) expr()            {}

// Annotated is a carried type plus auxiliary markers.
type Annotated struct {
	Inner  Expr
	Extras []Marker
}

func (a *Annotated) String() string { return Format(a) }
func (*Annotated) expr()            {}

// ParamList is the parameter list of a callable shape. It is not a type.
type ParamList struct {
	Items []Expr
}

// Params creates a parameter list.
func Params(items ...Expr) *ParamList {
	return &ParamList{Items: items}
}

func (p *ParamList) String() string { return Format(p) }
func (*ParamList) expr()            {}

// Callable is a callable shape. A nil Params means any parameters (ellipsis).
type Callable struct {
	Params *ParamList
	Return Expr
}

// CallableOf creates a callable shape.
func CallableOf(params *ParamList, ret Expr) *Callable {
	return &Callable{Params: params, Return: ret}
}

func (c *Callable) String() string { return Format(c) }
func (*Callable) expr()            {}

// Forward is a reference to a type by name, resolved against namespaces.
type Forward struct {
	Name string
}

func (f *Forward) String() string { return Format(f) }
func (*Forward) expr()            {}

// Predeclared types.
var (
	Any       = &Type{Name: "Any"}
	NoneType  = &Type{Name: "None"}
	Object    = &Type{Name: "object"}
	Int       = &Type{Name: "int"}
	Float     = &Type{Name: "float"}
	Str       = &Type{Name: "str"}
	Bool      = &Type{Name: "bool"}
	Bytes     = &Type{Name: "bytes"}
	TypeAlias = &Type{Name: "TypeAlias"}

	Exception   = &Type{Name: "Exception"}
	ValueError  = &Type{Name: "ValueError"}
	TypeError   = &Type{Name: "TypeError"}
	KeyError    = &Type{Name: "KeyError"}
	LookupError = &Type{Name: "LookupError"}
	GoError     = &Type{Name: "error"}

	Ellipsis Expr = &ellipsis{text: "..."}
)

// IsEllipsis reports whether e is the ellipsis marker.
func IsEllipsis(e Expr) bool {
	return e == Ellipsis
}

// IsNone reports whether e is the null type.
func IsNone(e Expr) bool {
	return e == NoneType
}
