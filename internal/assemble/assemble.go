package assemble

import (
	"fmt"
	"slices"
	"strings"

	"dynadoc/internal/adjunct"
	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/introspect"
	"dynadoc/internal/render"
)

// Renderer turns introspection records into docstring text.
type Renderer interface {
	Render(possessor introspect.Subject, informations introspect.Informations, ctx *introspect.Context) string
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(possessor introspect.Subject, informations introspect.Informations, ctx *introspect.Context) string

// Render implements Renderer.
func (f RendererFunc) Render(
	possessor introspect.Subject,
	informations introspect.Informations,
	ctx *introspect.Context,
) string {
	return f(possessor, informations, ctx)
}

// Assembler decorates subjects with assembled docstrings.
//
// An Assembler holds configuration only and may be shared; every Decorate
// call walks with its own visited set.
type Assembler struct {
	ctx      *introspect.Context
	control  introspect.Control
	renderer Renderer
	table    introspect.FragmentTable
	preserve bool
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithContext sets the introspection and rendering context.
func WithContext(ctx *introspect.Context) Option {
	return func(a *Assembler) { a.ctx = ctx }
}

// WithControl sets the introspection control.
func WithControl(control introspect.Control) Option {
	return func(a *Assembler) { a.control = control }
}

// WithRenderer sets the renderer.
func WithRenderer(r Renderer) Option {
	return func(a *Assembler) { a.renderer = r }
}

// WithTable sets the fragment table used by Findex fragments and markers.
func WithTable(table introspect.FragmentTable) Option {
	return func(a *Assembler) { a.table = table }
}

// WithPreserve sets whether existing docstrings are kept. Default true.
func WithPreserve(preserve bool) Option {
	return func(a *Assembler) { a.preserve = preserve }
}

// New creates an Assembler. Without options it preserves docstrings,
// introspects without recursion and renders Legible Sphinx fields.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		control:  introspect.DefaultControl(),
		preserve: true,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.ctx == nil {
		a.ctx = introspect.NewContext()
	}

	if a.renderer == nil {
		a.renderer = render.New(render.StyleLegible)
	}

	return a
}

// Decorate assembles the docstring of subject from its existing docstring,
// fragments and rendered introspection, and writes it onto the subject.
// Members selected by the control's targets are decorated first.
func (a *Assembler) Decorate(subject introspect.Subject, fragments ...annotation.Marker) {
	w := &walk{Assembler: a, visited: make(map[introspect.Subject]struct{})}
	w.decorate(subject, a.control, fragments, introspect.FragmentSourceArgument)
}

// AssignModuleDocstring decorates module.
func (a *Assembler) AssignModuleDocstring(module *introspect.Module, fragments ...annotation.Marker) {
	a.Decorate(module, fragments...)
}

// Docstring assembles the docstring of subject without writing it and
// without visiting members.
func (a *Assembler) Docstring(subject introspect.Subject, fragments ...annotation.Marker) string {
	w := &walk{Assembler: a}
	return w.docstring(subject, a.control, fragments, introspect.FragmentSourceArgument)
}

type walk struct {
	*Assembler
	visited map[introspect.Subject]struct{}
}

func (w *walk) decorate(
	subject introspect.Subject,
	control introspect.Control,
	fragments []annotation.Marker,
	source introspect.FragmentSource,
) {
	if _, ok := w.visited[subject]; ok {
		return
	}

	w.visited[subject] = struct{}{}

	if control.Targets != introspect.TargetsNone {
		switch s := subject.(type) {
		case *introspect.Class:
			w.classMembers(s, control)
		case *introspect.Module:
			w.moduleMembers(s, control)
		}
	}

	if f := fieldsOf(subject); f.doc != nil {
		*f.doc = w.docstring(subject, control, fragments, source)
	}
}

func (w *walk) docstring(
	subject introspect.Subject,
	control introspect.Control,
	fragments []annotation.Marker,
	source introspect.FragmentSource,
) string {
	var parts []string

	if f := fieldsOf(subject); w.preserve && f.doc != nil && *f.doc != "" {
		parts = append(parts, w.ctx.Rectify(*f.doc, introspect.FragmentSourceDocstring))
	}

	parts = append(parts, w.fragments(fragments, source)...)

	if control.Enable {
		informations := introspect.Introspect(subject, w.ctx, control, adjunct.NewCache(), w.table)
		parts = append(parts, w.renderer.Render(subject, informations, w.ctx))
	}

	parts = slices.DeleteFunc(parts, func(p string) bool { return p == "" })

	return strings.TrimRight(strings.Join(parts, "\n\n"), " \t\r\n")
}

func (w *walk) fragments(fragments []annotation.Marker, source introspect.FragmentSource) []string {
	texts := make([]string, 0, len(fragments))

	for _, fragment := range fragments {
		var text string

		switch m := fragment.(type) {
		case annotation.Doc:
			text = m.Documentation
		case annotation.Findex:
			entry, ok := w.table[m.Name]
			if !ok {
				w.ctx.Notify(diagnostic.LevelError, introspect.MissingFragmentMessage(m.Name, w.table))
				continue
			}

			text = entry
		default:
			w.ctx.Notify(diagnostic.LevelError,
				fmt.Sprintf("Fragment %v is invalid. Must be Doc or Findex.", fragment))

			continue
		}

		texts = append(texts, w.ctx.Rectify(text, source))
	}

	return texts
}
