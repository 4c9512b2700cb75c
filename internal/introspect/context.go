package introspect

import (
	"strings"

	"dynadoc/internal/annotation"
	"dynadoc/internal/common"
	"dynadoc/internal/diagnostic"
)

// FragmentSource identifies where a description fragment came from.
type FragmentSource int

const (
	FragmentSourceAnnotation FragmentSource = iota // Doc or Findex marker on an annotation
	FragmentSourceArgument                         // fragment passed to the assembler
	FragmentSourceAttribute                        // fragment list carried by a subject
	FragmentSourceDocstring                        // preserved docstring
	FragmentSourceRenderer                         // rendered introspection
)

// String returns a human-readable representation of the FragmentSource.
func (s FragmentSource) String() string {
	switch s {
	case FragmentSourceAnnotation:
		return "annotation"
	case FragmentSourceArgument:
		return "argument"
	case FragmentSourceAttribute:
		return "attribute"
	case FragmentSourceDocstring:
		return "docstring"
	case FragmentSourceRenderer:
		return "renderer"
	default:
		return common.UnknownStr
	}
}

// FragmentRectifier cleans a description fragment.
type FragmentRectifier func(fragment string, source FragmentSource) string

// VisibilityDecider decides whether an attribute of possessor is documented.
// The annotation is nil for unannotated attributes.
type VisibilityDecider func(possessor Subject, name string, ann annotation.Expr, description string) bool

// AnnotationAccessor returns the annotations of a subject with forward
// references resolved against the namespaces.
type AnnotationAccessor func(possessor AnnotationHolder, ns Namespaces) (Annotations, error)

// SignatureAccessor returns the signature of a callable subject.
type SignatureAccessor func(possessor Signed) ([]Parameter, error)

// FragmentTable maps fragment names to description text.
type FragmentTable map[string]string

// Names returns the fragment names of the table.
func (t FragmentTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}

	return names
}

// Namespaces are the name maps forward references are resolved against.
// Locals shadow Globals.
type Namespaces struct {
	Globals map[string]annotation.Expr
	Locals  map[string]annotation.Expr
}

// Lookup resolves a name.
func (ns Namespaces) Lookup(name string) (annotation.Expr, bool) {
	if e, ok := ns.Locals[name]; ok {
		return e, true
	}

	e, ok := ns.Globals[name]

	return e, ok
}

// Context carries the collaborators of an introspection.
type Context struct {
	Notifier          diagnostic.Notifier
	FragmentRectifier FragmentRectifier
	VisibilityDecider VisibilityDecider
	// Namespaces resolve forward references in annotations.
	Namespaces Namespaces
	// InvokerGlobals are the names visible where the documentation is
	// produced; renderers use them to shorten qualified names.
	InvokerGlobals map[string]annotation.Expr

	AnnotationAccessor AnnotationAccessor
	SignatureAccessor  SignatureAccessor
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithNotifier sets the notification sink.
func WithNotifier(n diagnostic.Notifier) ContextOption {
	return func(c *Context) { c.Notifier = n }
}

// WithFragmentRectifier sets the fragment rectifier.
func WithFragmentRectifier(r FragmentRectifier) ContextOption {
	return func(c *Context) { c.FragmentRectifier = r }
}

// WithVisibilityDecider sets the visibility predicate.
func WithVisibilityDecider(d VisibilityDecider) ContextOption {
	return func(c *Context) { c.VisibilityDecider = d }
}

// WithNamespaces sets the resolution namespaces.
func WithNamespaces(ns Namespaces) ContextOption {
	return func(c *Context) { c.Namespaces = ns }
}

// WithAnnotationAccessor replaces the annotation-access facility.
func WithAnnotationAccessor(a AnnotationAccessor) ContextOption {
	return func(c *Context) { c.AnnotationAccessor = a }
}

// WithSignatureAccessor replaces the signature-access facility.
func WithSignatureAccessor(a SignatureAccessor) ContextOption {
	return func(c *Context) { c.SignatureAccessor = a }
}

// NewContext creates a Context. Unset collaborators get defaults: a
// discarding notifier, CleanDoc, IsAttributeVisible, AccessAnnotations
// and AccessSignature.
func NewContext(opts ...ContextOption) *Context {
	c := &Context{}
	for _, opt := range opts {
		opt(c)
	}

	c.applyDefaults()

	return c
}

func (c *Context) applyDefaults() {
	if c.Notifier == nil {
		c.Notifier = diagnostic.Discard
	}

	if c.FragmentRectifier == nil {
		c.FragmentRectifier = CleanDoc
	}

	if c.VisibilityDecider == nil {
		c.VisibilityDecider = IsAttributeVisible
	}

	if c.AnnotationAccessor == nil {
		c.AnnotationAccessor = AccessAnnotations
	}

	if c.SignatureAccessor == nil {
		c.SignatureAccessor = AccessSignature
	}
}

// WithInvokerGlobals returns a copy of the context with the invoker globals replaced.
func (c *Context) WithInvokerGlobals(globals map[string]annotation.Expr) *Context {
	clone := *c
	clone.InvokerGlobals = globals

	return &clone
}

// Notify forwards a notification to the notifier, if any.
func (c *Context) Notify(level diagnostic.Level, message string) {
	if c.Notifier == nil {
		return
	}

	c.Notifier.Notify(level, message)
}

// Rectify cleans a fragment with the rectifier, CleanDoc when unset.
func (c *Context) Rectify(fragment string, source FragmentSource) string {
	if c.FragmentRectifier == nil {
		return CleanDoc(fragment, source)
	}

	return c.FragmentRectifier(fragment, source)
}

// CleanDoc removes the indentation common to all lines after the first,
// trims leading whitespace from the first line and drops leading and
// trailing blank lines.
func CleanDoc(fragment string, _ FragmentSource) string {
	lines := strings.Split(strings.ReplaceAll(fragment, "\t", "        "), "\n")

	margin := -1

	for _, line := range lines[1:] {
		stripped := strings.TrimLeft(line, " ")
		if stripped == "" {
			continue
		}

		indent := len(line) - len(stripped)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " ")

	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= margin {
				lines[i] = lines[i][margin:]
			} else {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

// Verbatim is a FragmentRectifier that returns fragments unchanged.
func Verbatim(fragment string, _ FragmentSource) string {
	return fragment
}
