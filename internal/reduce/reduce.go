// Package reduce strips metadata wrappers from annotations and rebuilds
// equivalent clean expressions for display, collecting the stripped markers
// and structural traits into an Adjuncts bag.
package reduce

import (
	"fmt"

	"dynadoc/internal/adjunct"
	"dynadoc/internal/annotation"
	"dynadoc/internal/common"
	"dynadoc/internal/diagnostic"
)

// DefaultMaxDepth bounds the nesting of annotations that will be reduced.
const DefaultMaxDepth = 256

// Reducer reduces annotations through a shared cache.
//
// A Reducer and its cache belong to one top-level introspection call.
type Reducer struct {
	notifier diagnostic.Notifier
	cache    *adjunct.Cache
	maxDepth int
	depth    int
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithMaxDepth sets the nesting ceiling. Values below one disable the ceiling.
func WithMaxDepth(n int) Option {
	return func(r *Reducer) {
		r.maxDepth = n
	}
}

// New creates a Reducer. A nil cache gets a fresh one; a nil notifier discards.
func New(notifier diagnostic.Notifier, cache *adjunct.Cache, opts ...Option) *Reducer {
	if notifier == nil {
		notifier = diagnostic.Discard
	}

	if cache == nil {
		cache = adjunct.NewCache()
	}

	r := &Reducer{
		notifier: notifier,
		cache:    cache,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Cache returns the cache used by the Reducer.
func (r *Reducer) Cache() *adjunct.Cache {
	return r.cache
}

// Reduce returns the clean form of an annotation, appending stripped markers
// and structural traits to bag.
//
// Reduce never fails. Cycles resolve to annotation.Any, and expressions whose
// origin rejects the reduced arguments resolve to the bare origin; both are
// reported through the notifier.
func (r *Reducer) Reduce(e annotation.Expr, bag *adjunct.Adjuncts) annotation.Expr {
	if e == nil {
		return nil
	}

	entry := r.cache.Access(e)

	switch entry.State {
	case adjunct.EntryInProgress:
		r.notifier.Notify(diagnostic.LevelAdmonition, fmt.Sprintf(
			"Annotation with circular reference %s; returning Any.", annotation.Format(e)))

		return r.cache.Enter(e, annotation.Any)

	case adjunct.EntryDone:
		return entry.Value

	case adjunct.EntryAbsent:
	}

	if r.maxDepth > 0 && r.depth >= r.maxDepth {
		r.notifier.Notify(diagnostic.LevelError, fmt.Sprintf(
			"Annotation nesting exceeds maximum depth %d; returning Any.", r.maxDepth))

		return annotation.Any
	}

	r.depth++
	defer func() { r.depth-- }()

	r.cache.Begin(e)

	return r.cache.Enter(e, r.reduceCore(e, bag))
}

func (r *Reducer) reduceCore(e annotation.Expr, bag *adjunct.Adjuncts) annotation.Expr {
	origin, args := annotation.Decompose(e)

	// Bare types, Any, type variables and the ellipsis are taken as-is.
	// Literal values are data and are considered fully reduced.
	if origin == nil || origin.Kind == annotation.OriginLiteral {
		return e
	}

	if len(args) == 0 {
		return e
	}

	if origin.Kind == annotation.OriginAnnotated {
		inner, extras, _ := annotation.Metadata(e)
		bag.AddExtras(extras...)

		return r.Reduce(inner, bag)
	}

	return r.reconstitute(origin, args, bag)
}

func (r *Reducer) reconstitute(
	origin *annotation.Origin,
	args []annotation.Expr,
	bag *adjunct.Adjuncts,
) annotation.Expr {
	bag.AddTrait(origin.Name)

	var reduced []annotation.Expr

	if common.IsSingle(args) {
		reduced = []annotation.Expr{r.Reduce(args[0], bag)}
	} else {
		// Upward propagation from siblings is ambiguous, so sever the bag.
		severed := adjunct.Seeded(origin.Name)
		reduced = r.reduceArguments(origin, args, severed)
	}

	switch origin.Kind {
	case annotation.OriginUnion:
		// Unions cannot be reconstructed by parameterization.
		return annotation.UnionOf(reduced...)

	case annotation.OriginCallable:
		return r.reassembleCallable(origin, reduced)

	default:
		rebuilt, err := annotation.Parameterize(origin, reduced...)
		if err != nil {
			r.notifyReconstruction(origin, err)
			return origin
		}

		return rebuilt
	}
}

func (r *Reducer) reduceArguments(
	origin *annotation.Origin,
	args []annotation.Expr,
	bag *adjunct.Adjuncts,
) []annotation.Expr {
	if origin.Kind == annotation.OriginCallable {
		return r.reduceCallableArguments(args, bag)
	}

	reduced := make([]annotation.Expr, 0, len(args))
	for _, arg := range args {
		reduced = append(reduced, r.Reduce(arg, bag.Copy()))
	}

	return reduced
}

// reduceCallableArguments reduces the parameter list element-wise, passing an
// ellipsis through unchanged, and then the return type.
func (r *Reducer) reduceCallableArguments(
	args []annotation.Expr,
	bag *adjunct.Adjuncts,
) []annotation.Expr {
	if len(args) != 2 {
		reduced := make([]annotation.Expr, 0, len(args))
		for _, arg := range args {
			reduced = append(reduced, r.Reduce(arg, bag.Copy()))
		}

		return reduced
	}

	var params annotation.Expr = annotation.Ellipsis

	if list, ok := args[0].(*annotation.ParamList); ok {
		items := make([]annotation.Expr, 0, len(list.Items))
		for _, item := range list.Items {
			items = append(items, r.Reduce(item, bag.Copy()))
		}

		params = annotation.Params(items...)
	} else if !annotation.IsEllipsis(args[0]) {
		params = r.Reduce(args[0], bag.Copy())
	}

	return []annotation.Expr{params, r.Reduce(args[1], bag.Copy())}
}

func (r *Reducer) reassembleCallable(origin *annotation.Origin, reduced []annotation.Expr) annotation.Expr {
	if len(reduced) != 2 {
		r.notifyReconstruction(origin, fmt.Errorf("%w: %s expects 2 arguments, got %d",
			annotation.ErrArity, origin.Name, len(reduced)))

		return origin
	}

	switch params := reduced[0].(type) {
	case *annotation.ParamList:
		return annotation.CallableOf(params, reduced[1])
	default:
		if annotation.IsEllipsis(params) {
			return annotation.CallableOf(nil, reduced[1])
		}

		r.notifyReconstruction(origin, fmt.Errorf(
			"parameters must be a list or an ellipsis, got %s", annotation.Format(params)))

		return origin
	}
}

func (r *Reducer) notifyReconstruction(origin *annotation.Origin, err error) {
	r.notifier.Notify(diagnostic.LevelError, fmt.Sprintf(
		"Cannot reconstruct '%s' with reduced annotations for arguments. Reason: %v",
		origin.Name, err))
}
