package render

import (
	"fmt"
	"strings"

	"dynadoc/internal/adjunct"
	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/introspect"
	"dynadoc/internal/reduce"
)

// Renderer produces Sphinx reStructuredText field lists.
type Renderer struct {
	Style Style
	// LocalNames leaves names from the documented object's own package
	// unqualified.
	LocalNames bool
}

// New creates a renderer with the given style.
func New(style Style) *Renderer {
	return &Renderer{Style: style}
}

// Render renders informations with the Legible style.
func Render(possessor introspect.Subject, informations introspect.Informations, ctx *introspect.Context) string {
	return New(StyleLegible).Render(possessor, informations, ctx)
}

// Render renders each record of informations and joins the results with
// newlines. Records which produce no text are skipped.
func (r *Renderer) Render(
	possessor introspect.Subject,
	informations introspect.Informations,
	ctx *introspect.Context,
) string {
	if ctx == nil {
		ctx = introspect.NewContext()
	}

	p := &pass{
		ctx:       ctx,
		formatter: newFormatter(r.Style, ctx.InvokerGlobals, r.localPackage(possessor)),
	}

	parts := make([]string, 0, len(informations))

	for _, information := range informations {
		if text := p.information(information); text != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n")
}

func (r *Renderer) localPackage(possessor introspect.Subject) string {
	if !r.LocalNames {
		return ""
	}

	switch p := possessor.(type) {
	case *introspect.Class:
		return p.Module
	case *introspect.Function:
		return p.Module
	case *introspect.Module:
		return p.Name
	default:
		return ""
	}
}

type pass struct {
	ctx       *introspect.Context
	formatter *formatter
}

func (p *pass) information(information introspect.Information) string {
	switch info := information.(type) {
	case *introspect.ArgumentInformation:
		return p.argument(info)
	case *introspect.AttributeInformation:
		return p.attribute(info)
	case *introspect.ExceptionInformation:
		return p.exception(info)
	case *introspect.ReturnInformation:
		return p.returns(info)
	default:
		p.ctx.Notify(diagnostic.LevelAdmonition,
			fmt.Sprintf("Unrecognized information: %#v", information))

		return ""
	}
}

func (p *pass) argument(info *introspect.ArgumentInformation) string {
	lines := []string{fmt.Sprintf(":argument %s: %s", info.Name, info.Description)}

	if info.Annotation != nil {
		lines = append(lines, fmt.Sprintf(":type %s: %s", info.Name, p.formatter.format(info.Annotation)))
	}

	return strings.Join(lines, "\n")
}

func (p *pass) attribute(info *introspect.AttributeInformation) string {
	var label string

	switch info.Association {
	case introspect.AssociationModule:
		return p.moduleAttribute(info)
	case introspect.AssociationClass:
		label = "cvar"
	default:
		label = "ivar"
	}

	lines := []string{fmt.Sprintf(":%s %s: %s", label, info.Name, info.Description)}

	if info.Annotation != nil {
		lines = append(lines, fmt.Sprintf(":vartype %s: %s", info.Name, p.formatter.format(info.Annotation)))
	}

	return strings.Join(lines, "\n")
}

func (p *pass) moduleAttribute(info *introspect.AttributeInformation) string {
	var lines []string

	if info.Annotation == annotation.TypeAlias {
		lines = append(lines, ".. py:type:: "+info.Name)

		if info.HasValue {
			lines = append(lines, "   :canonical: "+p.canonical(info.Value))
		}

		return strings.Join(append(lines, "", "   "+info.Description), "\n")
	}

	lines = append(lines, ".. py:data:: "+info.Name)

	if info.Annotation != nil {
		lines = append(lines, "    :type: "+p.formatter.format(info.Annotation))
	}

	if info.HasValue {
		lines = append(lines, "    :value: "+Repr(info.Value))
	}

	return strings.Join(lines, "\n")
}

// canonical renders the target of a type alias. Annotation targets are
// reduced first so that their metadata does not leak into the output.
func (p *pass) canonical(value any) string {
	target, ok := value.(annotation.Expr)
	if !ok {
		return Repr(value)
	}

	reduced := reduce.New(p.ctx.Notifier, adjunct.NewCache()).Reduce(target, adjunct.New())

	return p.formatter.format(reduced)
}

func (p *pass) exception(info *introspect.ExceptionInformation) string {
	classes := []annotation.Expr{info.Annotation}
	if u, ok := info.Annotation.(*annotation.Union); ok {
		classes = u.Alternatives
	}

	lines := make([]string, 0, len(classes))
	for _, class := range classes {
		lines = append(lines, fmt.Sprintf(":raises %s: %s", p.formatter.format(class), info.Description))
	}

	return strings.Join(lines, "\n")
}

func (p *pass) returns(info *introspect.ReturnInformation) string {
	if info.Annotation == nil || annotation.IsNone(info.Annotation) {
		return ""
	}

	var lines []string

	if info.Description != "" {
		lines = append(lines, ":returns: "+info.Description)
	}

	lines = append(lines, ":rtype: "+p.formatter.format(info.Annotation))

	return strings.Join(lines, "\n")
}
