package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynadoc/internal/annotation"
)

func TestAccessAnnotations_KeepsNodesWithoutForwards(t *testing.T) {
	listInt := annotation.MustParameterize(annotation.List, annotation.Int)
	m := &Module{Name: "m", Annotations: Annotations{{Name: "a", Expr: listInt}}}

	got, err := AccessAnnotations(m, Namespaces{})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Same(t, listInt, got[0].Expr)
}

func TestAccessAnnotations_LocalsShadowGlobals(t *testing.T) {
	global := annotation.NewType("pkg", "Global")
	local := annotation.NewType("pkg", "Local")

	m := &Module{Name: "m", Annotations: Annotations{
		{Name: "a", Expr: annotation.Optional(&annotation.Forward{Name: "T"})},
	}}

	got, err := AccessAnnotations(m, Namespaces{
		Globals: map[string]annotation.Expr{"T": global},
		Locals:  map[string]annotation.Expr{"T": local},
	})

	require.NoError(t, err)
	assert.Equal(t, "Local | None", annotation.Format(got[0].Expr))
}

func TestAccessAnnotations_ResolvesEverywhere(t *testing.T) {
	target := annotation.NewType("pkg", "Target")
	ns := Namespaces{Globals: map[string]annotation.Expr{"Target": target}}
	fwd := &annotation.Forward{Name: "Target"}

	f := &Function{Name: "f", Annotations: Annotations{
		{Name: "cb", Expr: annotation.CallableOf(annotation.Params(fwd), fwd)},
		{Name: "any", Expr: annotation.CallableOf(nil, fwd)},
		{Name: "doc", Expr: annotation.Annotate(fwd, doc("described"))},
	}}

	got, err := AccessAnnotations(f, ns)

	require.NoError(t, err)
	assert.Equal(t, "Callable[[Target], Target]", annotation.Format(got[0].Expr))
	assert.Equal(t, "Callable[..., Target]", annotation.Format(got[1].Expr))

	inner, extras, ok := annotation.Metadata(got[2].Expr)
	require.True(t, ok)
	assert.Same(t, target, inner)
	assert.Equal(t, []annotation.Marker{doc("described")}, extras)
}

func TestAccessAnnotations_CyclicWithForward(t *testing.T) {
	target := annotation.NewType("pkg", "Leaf")

	g := &annotation.Generic{Origin: annotation.Dict}
	g.Args = []annotation.Expr{&annotation.Forward{Name: "Leaf"}, g}

	m := &Module{Name: "m", Annotations: Annotations{{Name: "tree", Expr: g}}}

	got, err := AccessAnnotations(m, Namespaces{Globals: map[string]annotation.Expr{"Leaf": target}})

	require.NoError(t, err)

	resolved, ok := got[0].Expr.(*annotation.Generic)
	require.True(t, ok)
	assert.Same(t, target, resolved.Args[0])
	assert.Same(t, resolved, resolved.Args[1])
}

func TestAccessAnnotations_Unresolved(t *testing.T) {
	m := &Module{Name: "m", Annotations: Annotations{{Name: "a", Expr: &annotation.Forward{Name: "Nope"}}}}

	_, err := AccessAnnotations(m, Namespaces{})

	var unresolved *UnresolvedError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "Nope", unresolved.Name)
}

func TestAnnotations_Merge(t *testing.T) {
	base := Annotations{{Name: "a", Expr: annotation.Int}, {Name: "b", Expr: annotation.Str}}
	derived := Annotations{{Name: "b", Expr: annotation.Bool}, {Name: "c", Expr: annotation.Float}}

	merged := base.Merge(derived)

	assert.Equal(t, []string{"a", "b", "c"}, merged.Names())
	b, ok := merged.Get("b")
	require.True(t, ok)
	assert.Same(t, annotation.Bool, b)

	original, _ := base.Get("b")
	assert.Same(t, annotation.Str, original)
}
