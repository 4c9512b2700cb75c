package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/introspect"
)

func newTestContext() (*introspect.Context, *diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	return introspect.NewContext(
		introspect.WithNotifier(&diags),
		introspect.WithFragmentRectifier(introspect.Verbatim),
	), &diags
}

func TestFormatAnnotation(t *testing.T) {
	listInt := annotation.MustParameterize(annotation.List, annotation.Int)
	order := annotation.NewType("dynadoc/store", "Order")

	tests := []struct {
		name    string
		expr    annotation.Expr
		legible string
		pep8    string
	}{
		{"bare", annotation.Int, "int", "int"},
		{"generic", listInt, "list[ int ]", "list[int]"},
		{
			"nested",
			annotation.MustParameterize(annotation.Dict, annotation.Str, listInt),
			"dict[ str, list[ int ] ]",
			"dict[str, list[int]]",
		},
		{"union", annotation.UnionOf(annotation.Int, annotation.NoneType), "int | None", "int | None"},
		{"literal", annotation.LiteralOf("a", 1, true), "Literal[ 'a', 1, True ]", "Literal['a', 1, True]"},
		{
			"callable",
			annotation.CallableOf(annotation.Params(annotation.Int, annotation.Str), annotation.Bool),
			"Callable[ [ int, str ], bool ]",
			"Callable[[int, str], bool]",
		},
		{
			"callable any params",
			annotation.CallableOf(nil, annotation.Str),
			"Callable[ ..., str ]",
			"Callable[..., str]",
		},
		{
			"callable no params",
			annotation.CallableOf(annotation.Params(), annotation.NoneType),
			"Callable[ [], None ]",
			"Callable[[], None]",
		},
		{"qualified", order, "store.Order", "store.Order"},
		{"type variable", &annotation.TypeVar{Name: "T"}, "T", "T"},
		{"metadata dropped", annotation.Annotate(annotation.Int, annotation.Doc{Documentation: "x"}), "int", "int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.legible, FormatAnnotation(tt.expr, StyleLegible, nil))
			assert.Equal(t, tt.pep8, FormatAnnotation(tt.expr, StylePep8, nil))
		})
	}
}

func TestFormatAnnotation_InvokerGlobals(t *testing.T) {
	order := annotation.NewType("dynadoc/store", "Order")
	line := annotation.NewType("dynadoc/store", "Order.Line")

	globals := map[string]annotation.Expr{"Order": order}

	assert.Equal(t, "Order", FormatAnnotation(order, StylePep8, globals))
	assert.Equal(t, "Order.Line", FormatAnnotation(line, StylePep8, globals))
	assert.Equal(t, "store.Order.Line", FormatAnnotation(line, StylePep8, nil))
}

func TestFormatAnnotation_Cycle(t *testing.T) {
	g := &annotation.Generic{Origin: annotation.List}
	g.Args = []annotation.Expr{g}

	assert.Equal(t, "list[...]", FormatAnnotation(g, StylePep8, nil))
}

func TestRender_Function(t *testing.T) {
	ctx, diags := newTestContext()

	f := &introspect.Function{
		Name:       "parse",
		Parameters: []introspect.Parameter{{Name: "text", Kind: introspect.ParameterPositionalOrKeyword}},
		Annotations: introspect.Annotations{
			{Name: "text", Expr: annotation.Annotate(annotation.Str, annotation.Doc{Documentation: "Input text."})},
			{Name: introspect.ReturnName, Expr: annotation.Annotate(annotation.Int,
				annotation.Doc{Documentation: "Parsed value."},
				annotation.NewRaises("Malformed input.", annotation.ValueError, annotation.TypeError),
			)},
		},
	}

	infos := introspect.Introspect(f, ctx, introspect.DefaultControl(), nil, nil)
	text := Render(f, infos, ctx)

	assert.Equal(t, ":argument text: Input text.\n"+
		":type text: str\n"+
		":returns: Parsed value.\n"+
		":rtype: int\n"+
		":raises ValueError: Malformed input.\n"+
		":raises TypeError: Malformed input.", text)
	assert.Zero(t, diags.Len())
}

func TestRender_NoneReturnOmitted(t *testing.T) {
	ctx, _ := newTestContext()

	infos := introspect.Informations{
		&introspect.ArgumentInformation{Name: "x"},
		&introspect.ReturnInformation{
			InformationBase: introspect.InformationBase{Annotation: annotation.NoneType, Description: "nothing"},
		},
	}

	assert.Equal(t, ":argument x: ", New(StylePep8).Render(&introspect.Function{Name: "f"}, infos, ctx))
}

func TestRender_ClassAttributes(t *testing.T) {
	ctx, _ := newTestContext()

	c := &introspect.Class{
		Name:   "Config",
		Module: "dynadoc/store",
		Annotations: introspect.Annotations{
			{Name: "registry", Expr: annotation.MustParameterize(annotation.ClassVar,
				annotation.MustParameterize(annotation.Dict, annotation.Str, annotation.Int))},
			{Name: "name", Expr: annotation.Annotate(annotation.Str, annotation.Doc{Documentation: "Display name."})},
		},
		Members: []introspect.Member{{Name: "limit", Value: 10}},
	}

	control := introspect.DefaultControl()
	control.Class.ScanAttributes = true

	infos := introspect.Introspect(c, ctx, control, nil, nil)
	text := New(StylePep8).Render(c, infos, ctx)

	assert.Equal(t, ":cvar registry: \n"+
		":vartype registry: ClassVar[dict[str, int]]\n"+
		":ivar name: Display name.\n"+
		":vartype name: str\n"+
		":cvar limit: ", text)
}

func TestRender_ModuleAttributes(t *testing.T) {
	ctx, _ := newTestContext()

	listInt := annotation.MustParameterize(annotation.List, annotation.Int)

	m := &introspect.Module{Name: "dynadoc/store"}
	infos := introspect.Informations{
		&introspect.AttributeInformation{
			InformationBase: introspect.InformationBase{Annotation: annotation.Str},
			Name:            "Version",
			Association:     introspect.AssociationModule,
			Value:           "1.0",
			HasValue:        true,
		},
		&introspect.AttributeInformation{
			InformationBase: introspect.InformationBase{
				Annotation:  annotation.TypeAlias,
				Description: "Identifier list.",
			},
			Name:        "Ids",
			Association: introspect.AssociationModule,
			Value:       annotation.Annotate(listInt, annotation.Doc{Documentation: "hidden"}),
			HasValue:    true,
		},
		&introspect.AttributeInformation{
			Name:        "Unset",
			Association: introspect.AssociationModule,
		},
	}

	text := New(StyleLegible).Render(m, infos, ctx)

	assert.Equal(t, ".. py:data:: Version\n"+
		"    :type: str\n"+
		"    :value: '1.0'\n"+
		".. py:type:: Ids\n"+
		"   :canonical: list[ int ]\n"+
		"\n"+
		"   Identifier list.\n"+
		".. py:data:: Unset", text)
}

func TestRender_LocalNames(t *testing.T) {
	ctx, _ := newTestContext()

	item := annotation.NewType("dynadoc/store", "Item")
	duration := annotation.NewType("time", "Duration")

	c := &introspect.Class{Name: "Order", Module: "dynadoc/store"}
	infos := introspect.Informations{
		&introspect.AttributeInformation{
			InformationBase: introspect.InformationBase{Annotation: item},
			Name:            "Item",
			Association:     introspect.AssociationInstance,
		},
		&introspect.AttributeInformation{
			InformationBase: introspect.InformationBase{Annotation: duration},
			Name:            "TTL",
			Association:     introspect.AssociationInstance,
		},
	}

	r := &Renderer{Style: StylePep8, LocalNames: true}

	assert.Equal(t, ":ivar Item: \n:vartype Item: Item\n:ivar TTL: \n:vartype TTL: time.Duration",
		r.Render(c, infos, ctx))
}

type bogusInformation struct {
	*introspect.ReturnInformation
}

func TestRender_UnrecognizedInformation(t *testing.T) {
	ctx, diags := newTestContext()

	infos := introspect.Informations{bogusInformation{&introspect.ReturnInformation{}}}

	assert.Empty(t, Render(&introspect.Function{Name: "f"}, infos, ctx))
	require.Len(t, diags.Admonitions, 1)
	assert.Contains(t, diags.Admonitions[0].Message, "Unrecognized information")
}

func TestParseStyle(t *testing.T) {
	for _, style := range []Style{StyleLegible, StylePep8} {
		parsed, err := ParseStyle(style.String())
		require.NoError(t, err)
		assert.Equal(t, style, parsed)
	}

	parsed, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleLegible, parsed)

	_, err = ParseStyle("numpy")
	assert.Error(t, err)
}
