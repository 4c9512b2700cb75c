// Package annotation models type expressions and the metadata attached to them.
//
// Go carries no runtime annotation graph, so this package supplies one:
// a closed set of pointer-typed nodes (bare types, generic applications,
// unions, literals, callables, metadata wrappers, forward references)
// together with the facility functions used to take them apart and put
// them back together.
//
// Key functions:
//   - Decompose: splits an expression into origin and arguments
//   - Parameterize: applies an origin to arguments, validating arity
//   - UnionOf: folds alternatives with the union operator
//   - Annotate / Metadata: wrap and unwrap auxiliary markers
//
// Node identity is pointer identity. Expressions are usable as map keys and
// may form cycles (a Generic whose arguments point back at itself).
package annotation
