package introspect

import (
	"errors"
	"fmt"
	"slices"

	"dynadoc/internal/annotation"
	"dynadoc/internal/common"
)

// ReturnName is the annotation name under which a function's return type is stored.
const ReturnName = "return"

// ErrNoSignature is returned for callables whose signature cannot be determined.
var ErrNoSignature = errors.New("no signature available")

// Subject is a documentable entity: a *Function, a *Class or a *Module.
type Subject interface {
	// SubjectName returns the unqualified name.
	SubjectName() string
	// FullName returns the fully-qualified name, e.g. "pkg.Class.method".
	FullName() string
	subject()
}

// AnnotationHolder is a Subject with named annotations.
type AnnotationHolder interface {
	Subject
	NamedAnnotations() Annotations
}

// Signed is a Subject with a callable signature.
type Signed interface {
	Subject
	Signature() ([]Parameter, error)
}

// MemberLister is a Subject whose members can be enumerated.
type MemberLister interface {
	Subject
	MemberList() []Member
}

// Annotation is a named annotation.
type Annotation struct {
	Name string
	Expr annotation.Expr
}

// Annotations is an ordered name to annotation mapping.
type Annotations []Annotation

// Get returns the annotation stored under name.
func (a Annotations) Get(name string) (annotation.Expr, bool) {
	for _, entry := range a {
		if entry.Name == name {
			return entry.Expr, true
		}
	}

	return nil, false
}

// Has reports whether name is annotated.
func (a Annotations) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Names returns the annotated names in order.
func (a Annotations) Names() []string {
	names := make([]string, 0, len(a))
	for _, entry := range a {
		names = append(names, entry.Name)
	}

	return names
}

// Merge returns a copy of a updated with other. Names already present keep
// their position and take the value from other; new names are appended.
func (a Annotations) Merge(other Annotations) Annotations {
	merged := slices.Clone(a)

	for _, entry := range other {
		i := slices.IndexFunc(merged, func(m Annotation) bool { return m.Name == entry.Name })
		if i >= 0 {
			merged[i].Expr = entry.Expr
			continue
		}

		merged = append(merged, entry)
	}

	return merged
}

// ParameterKind is the binding kind of a parameter.
type ParameterKind int

const (
	ParameterPositionalOnly ParameterKind = iota
	ParameterPositionalOrKeyword
	ParameterVariadic
	ParameterKeywordOnly
	ParameterVariadicKeyword
)

// String returns a human-readable representation of the ParameterKind.
func (k ParameterKind) String() string {
	switch k {
	case ParameterPositionalOnly:
		return "positional-only"
	case ParameterPositionalOrKeyword:
		return "positional-or-keyword"
	case ParameterVariadic:
		return "variadic"
	case ParameterKeywordOnly:
		return "keyword-only"
	case ParameterVariadicKeyword:
		return "variadic-keyword"
	default:
		return common.UnknownStr
	}
}

// Parameter describes one entry of a callable signature.
type Parameter struct {
	Name       string
	Kind       ParameterKind
	Default    any
	HasDefault bool
}

// Member is a named value found on a class or module.
type Member struct {
	Name  string
	Value any
	// Callable marks values that are documented on their own, such as
	// methods. Function and Class values are always callable.
	Callable bool
}

// IsCallable reports whether the member is documented separately.
func (m Member) IsCallable() bool {
	if m.Callable {
		return true
	}

	switch m.Value.(type) {
	case *Function, *Class:
		return true
	default:
		return false
	}
}

// Limit narrows introspection for the subject that carries it and everything
// decorated beneath it.
type Limit struct {
	Disable           bool
	TargetsExclusions Targets
}

// Function is a callable subject.
type Function struct {
	Name     string
	QualName string // defaults to Name
	Module   string
	// Parameters in declaration order.
	Parameters []Parameter
	// Annotations by parameter name; the return annotation is stored under
	// ReturnName. Values may be *annotation.Forward references.
	Annotations Annotations
	// Native marks callables without an obtainable signature.
	Native bool
	// Lambda marks anonymous functions, which are never introspected.
	Lambda bool

	Doc       string
	Fragments []annotation.Marker
	Limit     *Limit
}

// SubjectName implements Subject.
func (f *Function) SubjectName() string { return f.Name }

// FullName implements Subject.
func (f *Function) FullName() string { return fullName(f.Module, f.QualifiedName()) }

// NamedAnnotations implements AnnotationHolder.
func (f *Function) NamedAnnotations() Annotations { return f.Annotations }

// Signature implements Signed.
func (f *Function) Signature() ([]Parameter, error) {
	if f.Native {
		return nil, fmt.Errorf("%w for native callable %s", ErrNoSignature, f.QualifiedName())
	}

	return f.Parameters, nil
}

// QualifiedName returns QualName, or Name when QualName is unset.
func (f *Function) QualifiedName() string {
	if f.QualName == "" {
		return f.Name
	}

	return f.QualName
}

func (*Function) subject() {}

// Class is a class subject.
type Class struct {
	Name     string
	QualName string // defaults to Name
	Module   string
	// Bases in declaration order.
	Bases []*Class
	// Annotations declared on the class itself.
	Annotations Annotations
	Members     []Member
	// Enum marks enumeration classes; their members are the enumerators.
	Enum bool

	Doc       string
	Fragments []annotation.Marker
	Limit     *Limit

	typ *annotation.Type
}

// SubjectName implements Subject.
func (c *Class) SubjectName() string { return c.Name }

// FullName implements Subject.
func (c *Class) FullName() string { return fullName(c.Module, c.QualifiedName()) }

// NamedAnnotations implements AnnotationHolder.
func (c *Class) NamedAnnotations() Annotations { return c.Annotations }

// MemberList implements MemberLister.
func (c *Class) MemberList() []Member { return c.Members }

// Type returns the annotation naming this class. The same *annotation.Type
// is returned on every call.
func (c *Class) Type() *annotation.Type {
	if c.typ == nil {
		c.typ = annotation.NewType(c.Module, c.QualifiedName())
	}

	return c.typ
}

// QualifiedName returns QualName, or Name when QualName is unset.
func (c *Class) QualifiedName() string {
	if c.QualName == "" {
		return c.Name
	}

	return c.QualName
}

func (*Class) subject() {}

// Module is a module subject.
type Module struct {
	Name        string
	Annotations Annotations
	Members     []Member
	// Exports lists the public names of the module; nil means the module
	// has no export list.
	Exports []string

	Doc       string
	Fragments []annotation.Marker
	Limit     *Limit
}

// SubjectName implements Subject.
func (m *Module) SubjectName() string { return m.Name }

// FullName implements Subject.
func (m *Module) FullName() string { return m.Name }

// NamedAnnotations implements AnnotationHolder.
func (m *Module) NamedAnnotations() Annotations { return m.Annotations }

// MemberList implements MemberLister.
func (m *Module) MemberList() []Member { return m.Members }

func (*Module) subject() {}

func fullName(module, qualName string) string {
	if module == "" {
		return qualName
	}

	return module + "." + qualName
}
