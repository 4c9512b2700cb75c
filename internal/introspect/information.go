package introspect

import (
	"dynadoc/internal/annotation"
)

//go:generate go tool stringer -type=Association -trimprefix=Association -output=association_string.go

// Association is the scope an attribute belongs to.
type Association int

const (
	AssociationModule   Association = iota // module-level data
	AssociationClass                       // shared by all instances
	AssociationInstance                    // per instance
)

// Information is one record extracted from a subject: an
// *ArgumentInformation, *AttributeInformation, *ExceptionInformation or
// *ReturnInformation.
type Information interface {
	Base() *InformationBase
	information()
}

// Informations is the ordered output of an introspection.
type Informations []Information

// InformationBase holds what every record carries.
type InformationBase struct {
	// Annotation is the reduced annotation; nil when the subject is not annotated.
	Annotation annotation.Expr
	// Description is the compiled description; empty when there is none.
	Description string
}

// Base implements Information.
func (b *InformationBase) Base() *InformationBase { return b }

// ArgumentInformation describes a callable parameter.
type ArgumentInformation struct {
	InformationBase
	Name      string
	Parameter Parameter
	Default   annotation.Default
}

// AttributeInformation describes a data attribute of a class or module.
type AttributeInformation struct {
	InformationBase
	Name        string
	Association Association
	Default     annotation.Default
	// Value is the assigned value when HasValue is set.
	Value    any
	HasValue bool
}

// ExceptionInformation describes an exception a callable may raise.
type ExceptionInformation struct {
	InformationBase
}

// ReturnInformation describes the value a callable returns.
type ReturnInformation struct {
	InformationBase
}

func (*ArgumentInformation) information()  {}
func (*AttributeInformation) information() {}
func (*ExceptionInformation) information() {}
func (*ReturnInformation) information()    {}

// Arguments returns the argument records in order.
func (is Informations) Arguments() []*ArgumentInformation {
	return collect[*ArgumentInformation](is)
}

// Attributes returns the attribute records in order.
func (is Informations) Attributes() []*AttributeInformation {
	return collect[*AttributeInformation](is)
}

// Exceptions returns the exception records in order.
func (is Informations) Exceptions() []*ExceptionInformation {
	return collect[*ExceptionInformation](is)
}

// Returns returns the return records in order.
func (is Informations) Returns() []*ReturnInformation {
	return collect[*ReturnInformation](is)
}

func collect[T Information](is Informations) []T {
	var out []T

	for _, i := range is {
		if t, ok := i.(T); ok {
			out = append(out, t)
		}
	}

	return out
}
