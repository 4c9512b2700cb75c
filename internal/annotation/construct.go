package annotation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

var (
	// ErrArity is returned when an origin receives the wrong number of arguments.
	ErrArity = errors.New("wrong number of type arguments")
	// ErrSpecialForm is returned when a special form is parameterized generically.
	ErrSpecialForm = errors.New("special form cannot be parameterized generically")
)

// Decompose splits an expression into its origin and arguments.
//
// Bare types, Any, type variables, the ellipsis, forward references and bare
// origins have no origin. A Literal reports its origin but no arguments since
// literal values are data. An Annotated reports its carried type as the single
// argument; its markers are reached through Metadata. A Callable reports its
// parameter list (or the ellipsis) followed by its return type.
func Decompose(e Expr) (*Origin, []Expr) {
	switch x := e.(type) {
	case *Generic:
		return x.Origin, x.Args

	case *Union:
		return UnionOrigin, x.Alternatives

	case *Literal:
		return LiteralOrigin, nil

	case *Annotated:
		return AnnotatedOrigin, []Expr{x.Inner}

	case *Callable:
		var params Expr = Ellipsis
		if x.Params != nil {
			params = x.Params
		}

		return CallableOrigin, []Expr{params, x.Return}

	default:
		return nil, nil
	}
}

// Metadata returns the carried type and markers of an Annotated expression.
func Metadata(e Expr) (Expr, []Marker, bool) {
	a, ok := e.(*Annotated)
	if !ok {
		return nil, nil, false
	}

	return a.Inner, a.Extras, true
}

// Annotate wraps inner with markers. Nested wrappers are flattened so that
// the markers of the inner wrapper come first.
func Annotate(inner Expr, extras ...Marker) *Annotated {
	if a, ok := inner.(*Annotated); ok {
		merged := make([]Marker, 0, len(a.Extras)+len(extras))
		merged = append(merged, a.Extras...)
		merged = append(merged, extras...)

		return &Annotated{Inner: a.Inner, Extras: merged}
	}

	return &Annotated{Inner: inner, Extras: extras}
}

// Parameterize applies a generic origin to arguments.
//
// Union, callable, literal and metadata origins are reassembled through their
// dedicated constructors and are rejected here.
func Parameterize(origin *Origin, args ...Expr) (Expr, error) {
	if origin == nil {
		return nil, errors.New("nil origin")
	}

	switch origin.Kind {
	case OriginUnion, OriginCallable, OriginLiteral, OriginAnnotated:
		return nil, fmt.Errorf("%w: %s", ErrSpecialForm, origin.Name)
	case OriginGeneric, OriginSpecial:
	}

	if len(args) < origin.MinArgs || (origin.MaxArgs != Unbounded && len(args) > origin.MaxArgs) {
		return nil, fmt.Errorf("%w: %s expects %s, got %d",
			ErrArity, origin.Name, arityText(origin), len(args))
	}

	for i, arg := range args {
		if arg == nil {
			return nil, fmt.Errorf("argument %d of %s is nil", i, origin.Name)
		}
	}

	if origin.Validate != nil {
		if err := origin.Validate(args); err != nil {
			return nil, err
		}
	}

	return &Generic{Origin: origin, Args: slices.Clone(args)}, nil
}

// MustParameterize is like Parameterize but panics on error.
// It is intended for statically known expressions.
func MustParameterize(origin *Origin, args ...Expr) Expr {
	e, err := Parameterize(origin, args...)
	if err != nil {
		panic(err)
	}

	return e
}

func arityText(o *Origin) string {
	switch {
	case o.MaxArgs == Unbounded:
		return fmt.Sprintf("at least %d argument(s)", o.MinArgs)
	case o.MinArgs == o.MaxArgs:
		return fmt.Sprintf("%d argument(s)", o.MinArgs)
	default:
		return fmt.Sprintf("%d to %d arguments", o.MinArgs, o.MaxArgs)
	}
}

// Or is the binary union operator.
func Or(a, b Expr) Expr {
	return UnionOf(a, b)
}

// UnionOf folds alternatives with the union operator.
//
// Nested unions are flattened and equal alternatives are dropped. A union of a
// single alternative is that alternative. UnionOf returns nil when given no
// alternatives.
func UnionOf(alternatives ...Expr) Expr {
	var flat []Expr

	add := func(e Expr) {
		for _, seen := range flat {
			if Equal(seen, e) {
				return
			}
		}

		flat = append(flat, e)
	}

	for _, alt := range alternatives {
		if alt == nil {
			continue
		}

		if u, ok := alt.(*Union); ok {
			for _, inner := range u.Alternatives {
				add(inner)
			}

			continue
		}

		add(alt)
	}

	switch len(flat) {
	case 0:
		return nil
	case 1:
		return flat[0]
	default:
		return &Union{Alternatives: flat}
	}
}

// Optional returns e | None.
func Optional(e Expr) Expr {
	return UnionOf(e, NoneType)
}

// Equal reports whether two expressions are structurally equal.
// Cyclic expressions are compared coinductively.
func Equal(a, b Expr) bool {
	return equal(a, b, make(map[[2]Expr]struct{}))
}

func equal(a, b Expr, assumed map[[2]Expr]struct{}) bool {
	if a == b {
		return true
	}

	if a == nil || b == nil {
		return false
	}

	key := [2]Expr{a, b}
	if _, ok := assumed[key]; ok {
		return true
	}

	assumed[key] = struct{}{}

	switch x := a.(type) {
	case *Type:
		y, ok := b.(*Type)
		return ok && x.Name == y.Name && x.PkgPath == y.PkgPath

	case *TypeVar:
		y, ok := b.(*TypeVar)
		return ok && x.Name == y.Name

	case *Forward:
		y, ok := b.(*Forward)
		return ok && x.Name == y.Name

	case *Origin:
		return false // origins compare by identity only

	case *Generic:
		y, ok := b.(*Generic)
		return ok && x.Origin == y.Origin && equalAll(x.Args, y.Args, assumed)

	case *Union:
		y, ok := b.(*Union)
		return ok && equalAll(x.Alternatives, y.Alternatives, assumed)

	case *Literal:
		y, ok := b.(*Literal)
		return ok && equalValues(x.Values, y.Values)

	case *Annotated:
		y, ok := b.(*Annotated)
		return ok && equal(x.Inner, y.Inner, assumed) && slices.Equal(x.Extras, y.Extras)

	case *ParamList:
		y, ok := b.(*ParamList)
		return ok && equalAll(x.Items, y.Items, assumed)

	case *Callable:
		y, ok := b.(*Callable)
		if !ok || (x.Params == nil) != (y.Params == nil) {
			return false
		}

		if x.Params != nil && !equal(x.Params, y.Params, assumed) {
			return false
		}

		return equal(x.Return, y.Return, assumed)

	default:
		return false
	}
}

func equalAll(xs, ys []Expr, assumed map[[2]Expr]struct{}) bool {
	if len(xs) != len(ys) {
		return false
	}

	for i := range xs {
		if !equal(xs[i], ys[i], assumed) {
			return false
		}
	}

	return true
}

// equalValues compares literal values element-wise. Values that are not
// comparable with ==, such as slices and maps, are compared deeply.
func equalValues(xs, ys []any) bool {
	if len(xs) != len(ys) {
		return false
	}

	for i := range xs {
		if !reflect.DeepEqual(xs[i], ys[i]) {
			return false
		}
	}

	return true
}
