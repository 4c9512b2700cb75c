package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/introspect"
)

const storeModule = "dynadoc/store"

func newTestContext() (*introspect.Context, *diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	return introspect.NewContext(
		introspect.WithNotifier(&diags),
		introspect.WithFragmentRectifier(introspect.Verbatim),
	), &diags
}

func doc(text string) annotation.Doc {
	return annotation.Doc{Documentation: text}
}

func parseFunction() *introspect.Function {
	return &introspect.Function{
		Name:       "Parse",
		Module:     storeModule,
		Parameters: []introspect.Parameter{{Name: "text", Kind: introspect.ParameterPositionalOrKeyword}},
		Annotations: introspect.Annotations{
			{Name: "text", Expr: annotation.Annotate(annotation.Str, doc("Input text."))},
		},
		Doc: "Parse text.",
	}
}

func TestDecorate_Function(t *testing.T) {
	ctx, diags := newTestContext()

	f := parseFunction()

	a := New(WithContext(ctx), WithTable(introspect.FragmentTable{"notes": "See notes."}))
	a.Decorate(f, doc("Extra."), annotation.Findex{Name: "notes"})

	assert.Equal(t, "Parse text.\n\n"+
		"Extra.\n\n"+
		"See notes.\n\n"+
		":argument text: Input text.\n"+
		":type text: str", f.Doc)
	assert.Zero(t, diags.Len())
}

func TestDecorate_NoPreserve(t *testing.T) {
	ctx, _ := newTestContext()

	f := parseFunction()

	New(WithContext(ctx), WithPreserve(false)).Decorate(f)

	assert.Equal(t, ":argument text: Input text.\n:type text: str", f.Doc)
}

func TestDecorate_IntrospectionDisabled(t *testing.T) {
	ctx, _ := newTestContext()

	f := parseFunction()

	New(WithContext(ctx), WithControl(introspect.Control{})).Decorate(f, doc("Extra.  \n"))

	assert.Equal(t, "Parse text.\n\nExtra.", f.Doc)
}

func TestDecorate_FragmentErrors(t *testing.T) {
	ctx, diags := newTestContext()

	f := &introspect.Function{Name: "f"}

	a := New(WithContext(ctx), WithTable(introspect.FragmentTable{"notes": "See notes."}))
	a.Decorate(f, annotation.Findex{Name: "nots"}, annotation.VisibilityConceal, doc("Kept."))

	assert.Equal(t, "Kept.", f.Doc)
	require.Len(t, diags.Errors, 2)
	assert.Equal(t, "Fragment 'nots' not in provided table. Did you mean: notes?", diags.Errors[0].Message)
	assert.Equal(t, "Fragment Conceal is invalid. Must be Doc or Findex.", diags.Errors[1].Message)
}

func TestDecorate_CustomRenderer(t *testing.T) {
	ctx, _ := newTestContext()

	var seen []string

	renderer := RendererFunc(func(possessor introspect.Subject, infos introspect.Informations, _ *introspect.Context) string {
		seen = append(seen, possessor.FullName())
		return "rendered " + possessor.SubjectName()
	})

	f := parseFunction()
	New(WithContext(ctx), WithRenderer(renderer), WithPreserve(false)).Decorate(f)

	assert.Equal(t, "rendered Parse", f.Doc)
	assert.Equal(t, []string{"dynadoc/store.Parse"}, seen)
}

func TestDocstring_DoesNotWrite(t *testing.T) {
	ctx, _ := newTestContext()

	f := parseFunction()

	text := New(WithContext(ctx)).Docstring(f, doc("Extra."))

	assert.Equal(t, "Parse text.\n\nExtra.\n\n:argument text: Input text.\n:type text: str", text)
	assert.Equal(t, "Parse text.", f.Doc)
}

// storeTree builds a module with nested classes and functions.
func storeTree() (*introspect.Module, map[string]*introspect.Class, map[string]*introspect.Function) {
	total := &introspect.Function{
		Name: "Total", QualName: "Order.Total", Module: storeModule, Doc: "Total of the order.",
		Annotations: introspect.Annotations{{Name: introspect.ReturnName, Expr: annotation.Int}},
	}
	detached := &introspect.Function{Name: "Detached", Module: storeModule, Doc: "Detached."}
	helper := &introspect.Function{Name: "Helper", Module: storeModule, Doc: "Helper."}
	lambda := &introspect.Function{Name: "<lambda>", Module: storeModule, Lambda: true, Doc: "Lambda."}
	foreignFn := &introspect.Function{Name: "Now", Module: "time", Doc: "Now."}

	order := &introspect.Class{
		Name:   "Order",
		Module: storeModule,
		Doc:    "Order.",
		Annotations: introspect.Annotations{
			{Name: "id", Expr: annotation.Annotate(annotation.Int, doc("Identifier."))},
		},
		Members: []introspect.Member{
			{Name: "Total", Value: total, Callable: true},
			{Name: "Detached", Value: detached, Callable: true},
		},
	}
	foreign := &introspect.Class{Name: "Duration", Module: "time", Doc: "Duration."}

	sub := &introspect.Module{Name: storeModule + "/audit", Doc: "Audit."}
	sibling := &introspect.Module{Name: "dynadoc/storefront", Doc: "Storefront."}

	module := &introspect.Module{
		Name: storeModule,
		Doc:  "Store.",
		Members: []introspect.Member{
			{Name: "Order", Value: order},
			{Name: "Alias", Value: order},
			{Name: "Helper", Value: helper},
			{Name: "lambda", Value: lambda},
			{Name: "Now", Value: foreignFn},
			{Name: "Duration", Value: foreign},
			{Name: "audit", Value: sub},
			{Name: "storefront", Value: sibling},
		},
	}

	classes := map[string]*introspect.Class{"Order": order, "Duration": foreign}
	functions := map[string]*introspect.Function{
		"Total": total, "Detached": detached, "Helper": helper, "lambda": lambda, "Now": foreignFn,
	}

	return module, classes, functions
}

func TestDecorate_ModuleRecursion(t *testing.T) {
	ctx, diags := newTestContext()

	module, classes, functions := storeTree()

	control := introspect.DefaultControl()
	control.Targets = introspect.TargetsAll

	New(WithContext(ctx), WithControl(control)).AssignModuleDocstring(module, doc("Sample store."))

	assert.Equal(t, "Store.\n\nSample store.", module.Doc)
	assert.Equal(t, "Order.\n\n:ivar id: Identifier.\n:vartype id: int", classes["Order"].Doc)
	assert.Equal(t, "Total of the order.\n\n:rtype: int", functions["Total"].Doc)
	assert.Equal(t, "Helper.", functions["Helper"].Doc)

	assert.Equal(t, "Detached.", functions["Detached"].Doc)
	assert.Equal(t, "Lambda.", functions["lambda"].Doc)
	assert.Equal(t, "Now.", functions["Now"].Doc)
	assert.Equal(t, "Duration.", classes["Duration"].Doc)

	audit := module.Members[6].Value.(*introspect.Module)
	storefront := module.Members[7].Value.(*introspect.Module)
	assert.Equal(t, "Audit.", audit.Doc)
	assert.Equal(t, "Storefront.", storefront.Doc)

	assert.Zero(t, diags.Len())
}

func TestDecorate_TargetsRestrictRecursion(t *testing.T) {
	ctx, _ := newTestContext()

	module, classes, functions := storeTree()

	control := introspect.DefaultControl()
	control.Targets = introspect.TargetFunction

	New(WithContext(ctx), WithControl(control)).Decorate(module)

	assert.Equal(t, "Order.", classes["Order"].Doc)
	assert.Equal(t, "Total of the order.", functions["Total"].Doc)
	assert.Equal(t, "Helper.", functions["Helper"].Doc)
}

func TestDecorate_RepeatedWalksAreIndependent(t *testing.T) {
	ctx, _ := newTestContext()

	module, classes, _ := storeTree()

	control := introspect.DefaultControl()
	control.Targets = introspect.TargetClass

	a := New(WithContext(ctx), WithControl(control), WithPreserve(false))
	a.Decorate(module)
	first := classes["Order"].Doc

	a.Decorate(module)

	assert.Equal(t, first, classes["Order"].Doc)
	assert.Equal(t, ":ivar id: Identifier.\n:vartype id: int", first)
}

func TestDecorate_Limits(t *testing.T) {
	ctx, diags := newTestContext()

	module, classes, functions := storeTree()
	classes["Order"].Limit = &introspect.Limit{TargetsExclusions: introspect.TargetFunction}
	functions["Helper"].Limit = &introspect.Limit{Disable: true}
	functions["Helper"].Annotations = introspect.Annotations{{Name: introspect.ReturnName, Expr: annotation.Int}}

	control := introspect.DefaultControl()
	control.Targets = introspect.TargetsAll

	New(WithContext(ctx), WithControl(control)).Decorate(module)

	assert.Equal(t, "Order.\n\n:ivar id: Identifier.\n:vartype id: int", classes["Order"].Doc)
	assert.Equal(t, "Total of the order.", functions["Total"].Doc)
	assert.Equal(t, "Helper.", functions["Helper"].Doc)
	assert.Zero(t, diags.Len())
}

func TestDecorate_InvalidLimit(t *testing.T) {
	ctx, diags := newTestContext()

	module, classes, _ := storeTree()
	classes["Order"].Limit = &introspect.Limit{TargetsExclusions: 1 << 7}

	control := introspect.DefaultControl()
	control.Targets = introspect.TargetsAll

	New(WithContext(ctx), WithControl(control)).Decorate(module)

	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "Invalid introspection limit on dynadoc/store.Order")
	assert.Equal(t, "Total of the order.\n\n:rtype: int", module.Members[0].Value.(*introspect.Class).Members[0].Value.(*introspect.Function).Doc)
}

func TestDecorate_Limiters(t *testing.T) {
	ctx, _ := newTestContext()

	module, classes, functions := storeTree()

	control := introspect.DefaultControl()
	control.Targets = introspect.TargetsAll
	control.Limiters = []introspect.Limiter{
		func(subject introspect.Subject, c introspect.Control) introspect.Control {
			if subject.SubjectName() == "Order" {
				c.Enable = false
			}

			return c
		},
	}

	New(WithContext(ctx), WithControl(control)).Decorate(module)

	assert.Equal(t, "Order.", classes["Order"].Doc)
	assert.Equal(t, "Total of the order.", functions["Total"].Doc)
}

func TestDecorate_CarriedFragments(t *testing.T) {
	ctx, diags := newTestContext()

	module, _, functions := storeTree()
	functions["Helper"].Fragments = []annotation.Marker{
		doc("Carried."),
		annotation.Findex{Name: "usage"},
		annotation.SuppressDefault,
	}

	control := introspect.DefaultControl()
	control.Targets = introspect.TargetFunction

	a := New(
		WithContext(ctx),
		WithControl(control),
		WithTable(introspect.FragmentTable{"usage": "Call it."}),
	)
	a.Decorate(module)

	assert.Equal(t, "Helper.\n\nCarried.\n\nCall it.", functions["Helper"].Doc)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "Invalid fragment on dynadoc/store.Helper: Default(Suppress)", diags.Errors[0].Message)
}

func TestPath(t *testing.T) {
	root := NewPath(storeModule)
	order := root.Member("Order")

	assert.Equal(t, "dynadoc/store", root.String())
	assert.Equal(t, "dynadoc/store.Order", order.String())
	assert.Equal(t, "dynadoc/store.Order.Total", order.Member("Total").String())
}
