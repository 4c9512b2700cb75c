package introspect

import (
	"fmt"

	"dynadoc/internal/annotation"
)

// UnresolvedError reports a forward reference that no namespace defines.
type UnresolvedError struct {
	Name string
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("name '%s' is not defined", e.Name)
}

// AccessAnnotations is the default AnnotationAccessor. Forward references
// are replaced by their namespace entries; annotations without forward
// references are returned as the same nodes.
func AccessAnnotations(possessor AnnotationHolder, ns Namespaces) (Annotations, error) {
	raw := possessor.NamedAnnotations()
	if len(raw) == 0 {
		return nil, nil
	}

	r := resolver{ns: ns, memo: make(map[annotation.Expr]annotation.Expr)}

	resolved := make(Annotations, 0, len(raw))

	for _, entry := range raw {
		e, err := r.resolve(entry.Expr)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, Annotation{Name: entry.Name, Expr: e})
	}

	return resolved, nil
}

// AccessSignature is the default SignatureAccessor.
func AccessSignature(possessor Signed) ([]Parameter, error) {
	return possessor.Signature()
}

type resolver struct {
	ns   Namespaces
	memo map[annotation.Expr]annotation.Expr
}

// resolve rebuilds e with forward references replaced. Nodes are memoized so
// that shared and cyclic structure is rebuilt once.
func (r *resolver) resolve(e annotation.Expr) (annotation.Expr, error) {
	if e == nil {
		return nil, nil
	}

	if done, ok := r.memo[e]; ok {
		return done, nil
	}

	if !hasForward(e, make(map[annotation.Expr]struct{})) {
		r.memo[e] = e
		return e, nil
	}

	switch x := e.(type) {
	case *annotation.Forward:
		target, ok := r.ns.Lookup(x.Name)
		if !ok {
			return nil, &UnresolvedError{Name: x.Name}
		}

		r.memo[e] = target

		return target, nil

	case *annotation.Generic:
		g := &annotation.Generic{Origin: x.Origin}
		r.memo[e] = g

		args, err := r.resolveAll(x.Args)
		if err != nil {
			return nil, err
		}

		g.Args = args

		return g, nil

	case *annotation.Union:
		u := &annotation.Union{}
		r.memo[e] = u

		alts, err := r.resolveAll(x.Alternatives)
		if err != nil {
			return nil, err
		}

		u.Alternatives = alts

		return u, nil

	case *annotation.Annotated:
		a := &annotation.Annotated{Extras: x.Extras}
		r.memo[e] = a

		inner, err := r.resolve(x.Inner)
		if err != nil {
			return nil, err
		}

		a.Inner = inner

		return a, nil

	case *annotation.ParamList:
		p := &annotation.ParamList{}
		r.memo[e] = p

		items, err := r.resolveAll(x.Items)
		if err != nil {
			return nil, err
		}

		p.Items = items

		return p, nil

	case *annotation.Callable:
		c := &annotation.Callable{}
		r.memo[e] = c

		if x.Params != nil {
			params, err := r.resolve(x.Params)
			if err != nil {
				return nil, err
			}

			c.Params, _ = params.(*annotation.ParamList)
		}

		ret, err := r.resolve(x.Return)
		if err != nil {
			return nil, err
		}

		c.Return = ret

		return c, nil

	default:
		r.memo[e] = e
		return e, nil
	}
}

func (r *resolver) resolveAll(es []annotation.Expr) ([]annotation.Expr, error) {
	out := make([]annotation.Expr, 0, len(es))

	for _, e := range es {
		resolved, err := r.resolve(e)
		if err != nil {
			return nil, err
		}

		out = append(out, resolved)
	}

	return out, nil
}

func hasForward(e annotation.Expr, seen map[annotation.Expr]struct{}) bool {
	if e == nil {
		return false
	}

	if _, ok := seen[e]; ok {
		return false
	}

	seen[e] = struct{}{}

	switch x := e.(type) {
	case *annotation.Forward:
		return true
	case *annotation.Generic:
		return anyForward(x.Args, seen)
	case *annotation.Union:
		return anyForward(x.Alternatives, seen)
	case *annotation.Annotated:
		return hasForward(x.Inner, seen)
	case *annotation.ParamList:
		return anyForward(x.Items, seen)
	case *annotation.Callable:
		return (x.Params != nil && hasForward(x.Params, seen)) || hasForward(x.Return, seen)
	default:
		return false
	}
}

func anyForward(es []annotation.Expr, seen map[annotation.Expr]struct{}) bool {
	for _, e := range es {
		if hasForward(e, seen) {
			return true
		}
	}

	return false
}
