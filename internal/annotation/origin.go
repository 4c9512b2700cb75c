package annotation

// OriginKind classifies how an origin is reassembled from arguments.
type OriginKind int

const (
	OriginGeneric   OriginKind = iota // list, dict, user generics
	OriginUnion                       // int | str
	OriginCallable                    // Callable[[int], str]
	OriginLiteral                     // Literal['a']
	OriginAnnotated                   // Annotated[int, ...]
	OriginSpecial                     // ClassVar, Final
)

// String returns a human-readable representation of the OriginKind.
func (k OriginKind) String() string {
	switch k {
	case OriginGeneric:
		return "generic"
	case OriginUnion:
		return "union"
	case OriginCallable:
		return "callable"
	case OriginLiteral:
		return "literal"
	case OriginAnnotated:
		return "annotated"
	case OriginSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// Unbounded marks an origin that accepts any number of arguments.
const Unbounded = -1

// Origin is the unparameterized form of a generic, e.g. the list in list[int].
//
// An Origin used on its own is a bare expression with nothing to reduce.
type Origin struct {
	Name    string
	PkgPath string
	Kind    OriginKind
	MinArgs int
	MaxArgs int // Unbounded for variadic origins
	// Validate optionally rejects argument lists that satisfy the arity.
	Validate func(args []Expr) error
}

// NewOrigin creates a generic origin accepting between minArgs and maxArgs arguments.
func NewOrigin(pkgPath, name string, minArgs, maxArgs int) *Origin {
	return &Origin{
		Name:    name,
		PkgPath: pkgPath,
		Kind:    OriginGeneric,
		MinArgs: minArgs,
		MaxArgs: maxArgs,
	}
}

// QualifiedName returns the package-qualified name of the origin.
func (o *Origin) QualifiedName() string {
	if o.PkgPath == "" {
		return o.Name
	}

	return o.PkgPath + "." + o.Name
}

func (o *Origin) String() string { return o.Name }
func (*Origin) expr()            {}

// Predeclared origins.
var (
	List     = &Origin{Name: "list", MinArgs: 1, MaxArgs: 1}
	Set      = &Origin{Name: "set", MinArgs: 1, MaxArgs: 1}
	Dict     = &Origin{Name: "dict", MinArgs: 2, MaxArgs: 2}
	Tuple    = &Origin{Name: "tuple", MinArgs: 1, MaxArgs: Unbounded}
	Sequence = &Origin{Name: "Sequence", MinArgs: 1, MaxArgs: 1}
	Mapping  = &Origin{Name: "Mapping", MinArgs: 2, MaxArgs: 2}
	TypeOf   = &Origin{Name: "type", MinArgs: 1, MaxArgs: 1}

	ClassVar = &Origin{Name: "ClassVar", Kind: OriginSpecial, MinArgs: 1, MaxArgs: 1}
	Final    = &Origin{Name: "Final", Kind: OriginSpecial, MinArgs: 1, MaxArgs: 1}

	UnionOrigin     = &Origin{Name: "Union", Kind: OriginUnion, MinArgs: 1, MaxArgs: Unbounded}
	CallableOrigin  = &Origin{Name: "Callable", Kind: OriginCallable, MinArgs: 2, MaxArgs: 2}
	LiteralOrigin   = &Origin{Name: "Literal", Kind: OriginLiteral, MinArgs: 1, MaxArgs: Unbounded}
	AnnotatedOrigin = &Origin{Name: "Annotated", Kind: OriginAnnotated, MinArgs: 1, MaxArgs: 1}

	// Go shapes.
	Pointer = &Origin{Name: "Pointer", MinArgs: 1, MaxArgs: 1}
	Slice   = &Origin{Name: "Slice", MinArgs: 1, MaxArgs: 1}
	Array   = &Origin{Name: "Array", MinArgs: 1, MaxArgs: 1}
	Map     = &Origin{Name: "Map", MinArgs: 2, MaxArgs: 2}
	Chan    = &Origin{Name: "Chan", MinArgs: 1, MaxArgs: 1}
)
