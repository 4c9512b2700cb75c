package goload

import (
	"go/types"

	"dynadoc/internal/annotation"
)

// converter turns go/types types into annotation expressions.
//
// Named types, origins and type parameters map to one expression each so
// that annotation identity follows type identity.
type converter struct {
	cache   map[types.Type]annotation.Expr // handles shared and recursive types
	basics  map[string]*annotation.Type
	names   map[*types.TypeName]*annotation.Type
	origins map[*types.TypeName]*annotation.Origin
}

func newConverter() *converter {
	return &converter{
		cache:   make(map[types.Type]annotation.Expr),
		basics:  make(map[string]*annotation.Type),
		names:   make(map[*types.TypeName]*annotation.Type),
		origins: make(map[*types.TypeName]*annotation.Origin),
	}
}

func (c *converter) convert(t types.Type) annotation.Expr {
	if t == nil {
		return annotation.Any
	}

	if cached, ok := c.cache[t]; ok {
		return cached
	}

	switch tt := t.(type) {
	case *types.Alias:
		return c.convert(types.Unalias(tt))

	case *types.Basic:
		return c.remember(t, c.basic(tt))

	case *types.Named:
		return c.named(tt)

	case *types.Pointer:
		return c.generic(t, annotation.Pointer, tt.Elem())

	case *types.Slice:
		return c.generic(t, annotation.Slice, tt.Elem())

	case *types.Array:
		return c.generic(t, annotation.Array, tt.Elem())

	case *types.Map:
		return c.generic(t, annotation.Map, tt.Key(), tt.Elem())

	case *types.Chan:
		return c.generic(t, annotation.Chan, tt.Elem())

	case *types.Signature:
		callable := &annotation.Callable{}
		c.cache[t] = callable

		callable.Params = annotation.Params(c.tuple(tt.Params())...)
		callable.Return = c.results(tt.Results())

		return callable

	case *types.Interface:
		return c.remember(t, c.iface(tt))

	case *types.Union:
		return c.remember(t, c.union(tt))

	case *types.TypeParam:
		return c.remember(t, &annotation.TypeVar{Name: tt.Obj().Name()})

	case *types.Struct:
		return c.remember(t, annotation.NewType("", "struct{...}"))

	case *types.Tuple:
		return c.results(tt)

	default:
		return annotation.Any
	}
}

func (c *converter) remember(t types.Type, e annotation.Expr) annotation.Expr {
	c.cache[t] = e
	return e
}

// generic pre-caches the node before converting arguments.
func (c *converter) generic(key types.Type, origin *annotation.Origin, args ...types.Type) annotation.Expr {
	g := &annotation.Generic{Origin: origin}
	c.cache[key] = g

	g.Args = make([]annotation.Expr, 0, len(args))
	for _, arg := range args {
		g.Args = append(g.Args, c.convert(arg))
	}

	return g
}

func (c *converter) basic(b *types.Basic) annotation.Expr {
	if b.Kind() == types.UntypedNil {
		return annotation.NoneType
	}

	name := types.Default(b).String()

	if t, ok := c.basics[name]; ok {
		return t
	}

	t := annotation.NewType("", name)
	c.basics[name] = t

	return t
}

func (c *converter) named(n *types.Named) annotation.Expr {
	obj := n.Obj()

	if obj.Pkg() == nil {
		if obj.Name() == "error" {
			return annotation.GoError
		}

		return c.universe(obj)
	}

	args := n.TypeArgs()
	if args.Len() == 0 {
		return c.remember(n, c.typeName(obj))
	}

	targs := make([]types.Type, 0, args.Len())
	for i := range args.Len() {
		targs = append(targs, args.At(i))
	}

	return c.generic(n, c.origin(obj, args.Len()), targs...)
}

func (c *converter) universe(obj *types.TypeName) annotation.Expr {
	if t, ok := c.basics[obj.Name()]; ok {
		return t
	}

	t := annotation.NewType("", obj.Name())
	c.basics[obj.Name()] = t

	return t
}

func (c *converter) typeName(obj *types.TypeName) *annotation.Type {
	if t, ok := c.names[obj]; ok {
		return t
	}

	t := annotation.NewType(obj.Pkg().Path(), obj.Name())
	c.names[obj] = t

	return t
}

func (c *converter) origin(obj *types.TypeName, n int) *annotation.Origin {
	if o, ok := c.origins[obj]; ok {
		return o
	}

	o := annotation.NewOrigin(obj.Pkg().Path(), obj.Name(), n, n)
	c.origins[obj] = o

	return o
}

func (c *converter) iface(i *types.Interface) annotation.Expr {
	if i.Empty() {
		return annotation.Any
	}

	if i.NumMethods() == 0 && i.NumEmbeddeds() == 1 {
		if u, ok := i.EmbeddedType(0).(*types.Union); ok {
			return c.union(u)
		}
	}

	return annotation.NewType("", i.String())
}

func (c *converter) union(u *types.Union) annotation.Expr {
	terms := make([]annotation.Expr, 0, u.Len())
	for i := range u.Len() {
		terms = append(terms, c.convert(u.Term(i).Type()))
	}

	return annotation.UnionOf(terms...)
}

func (c *converter) tuple(t *types.Tuple) []annotation.Expr {
	if t == nil {
		return nil
	}

	out := make([]annotation.Expr, 0, t.Len())
	for i := range t.Len() {
		out = append(out, c.convert(t.At(i).Type()))
	}

	return out
}

// results folds a result list: none is None, one is itself and several
// form a tuple.
func (c *converter) results(t *types.Tuple) annotation.Expr {
	items := c.tuple(t)

	switch len(items) {
	case 0:
		return annotation.NoneType
	case 1:
		return items[0]
	default:
		return &annotation.Generic{Origin: annotation.Tuple, Args: items}
	}
}
