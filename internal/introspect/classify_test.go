package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dynadoc/internal/adjunct"
	"dynadoc/internal/annotation"
)

func TestVisible(t *testing.T) {
	var calls []string

	tracking := func(_ Subject, name string, _ annotation.Expr, description string) bool {
		calls = append(calls, name+":"+description)
		return name == "visible"
	}

	ctx, _ := newTestContext(WithVisibilityDecider(tracking))
	possessor := &Module{Name: "mock"}

	tests := []struct {
		name   string
		extras []annotation.Marker
		attr   string
		want   bool
	}{
		{name: "conceal beats permissive decider", extras: []annotation.Marker{annotation.VisibilityConceal}, attr: "visible", want: false},
		{name: "reveal beats restrictive decider", extras: []annotation.Marker{annotation.VisibilityReveal}, attr: "_hidden", want: true},
		{name: "conceal beats reveal", extras: []annotation.Marker{annotation.VisibilityReveal, annotation.VisibilityConceal}, attr: "visible", want: false},
		{name: "default defers", extras: []annotation.Marker{annotation.VisibilityDefault}, attr: "visible", want: true},
		{name: "no marker defers", attr: "other", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := adjunct.New()
			bag.AddExtras(tt.extras...)

			assert.Equal(t, tt.want, Visible(ctx, possessor, tt.attr, annotation.Int, bag, "desc"))
		})
	}

	assert.Equal(t, []string{"visible:desc", "other:desc"}, calls)
}

func TestIsAttributeVisible(t *testing.T) {
	assert.True(t, IsAttributeVisible(nil, "name", nil, ""))
	assert.False(t, IsAttributeVisible(nil, "_name", nil, ""))
	assert.True(t, IsAttributeVisible(nil, "_name", nil, "documented"))
}

func TestIsExportedOrDescribed(t *testing.T) {
	assert.True(t, IsExportedOrDescribed(nil, "Name", nil, ""))
	assert.False(t, IsExportedOrDescribed(nil, "name", nil, ""))
	assert.True(t, IsExportedOrDescribed(nil, "name", nil, "documented"))
}

func TestAssociationOf(t *testing.T) {
	classVar := adjunct.Seeded(adjunct.TraitClassVar)
	plain := adjunct.New()

	assert.Equal(t, AssociationClass, AssociationOf(&Class{}, classVar))
	assert.Equal(t, AssociationInstance, AssociationOf(&Class{}, plain))
	assert.Equal(t, AssociationModule, AssociationOf(&Module{}, classVar))
	assert.Equal(t, "Instance", AssociationInstance.String())
}

func TestDefaultValuator(t *testing.T) {
	empty := adjunct.New()
	assert.Equal(t, annotation.AcceptDefault, DefaultValuator(empty, true))
	assert.Equal(t, annotation.SuppressDefault, DefaultValuator(empty, false))

	marked := adjunct.New()
	marked.AddExtras(annotation.SurrogateDefault("computed"), annotation.SuppressDefault)
	assert.Equal(t, annotation.SurrogateDefault("computed"), DefaultValuator(marked, false))
	assert.Equal(t, annotation.SurrogateDefault("computed"), DefaultValuator(marked, true))
}

func TestCompileDescription(t *testing.T) {
	var sources []FragmentSource

	upper := func(fragment string, source FragmentSource) string {
		sources = append(sources, source)
		return "[" + fragment + "]"
	}

	ctx, diags := newTestContext(WithFragmentRectifier(upper))

	bag := adjunct.New()
	bag.AddExtras(
		doc("first"),
		annotation.Findex{Name: "shared"},
		annotation.VisibilityReveal,
		&annotation.Opaque{Value: 42},
		annotation.Findex{Name: "absent"},
		doc("last"),
	)

	got := CompileDescription(ctx, bag, FragmentTable{"shared": "from table"})

	assert.Equal(t, "[first]\n\n[from table]\n\n[last]", got)
	assert.Equal(t, []FragmentSource{
		FragmentSourceAnnotation, FragmentSourceAnnotation, FragmentSourceAnnotation,
	}, sources)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "Fragment 'absent' not in provided table.", diags.Errors[0].Message)
}

func TestCompileDescription_Empty(t *testing.T) {
	ctx, _ := newTestContext()

	assert.Empty(t, CompileDescription(ctx, adjunct.New(), nil))
}

func TestExceptionsOf(t *testing.T) {
	bag := adjunct.New()
	bag.AddExtras(doc("ignored"), annotation.NewRaises("bad input", annotation.ValueError, annotation.TypeError))

	exceptions := ExceptionsOf(bag)

	require.Len(t, exceptions, 1)
	exc := exceptions[0].(*ExceptionInformation)
	assert.Equal(t, "ValueError | TypeError", annotation.Format(exc.Annotation))
	assert.Equal(t, "bad input", exc.Description)
}
