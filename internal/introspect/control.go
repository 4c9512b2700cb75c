package introspect

import (
	"strings"

	"dynadoc/internal/adjunct"
	"dynadoc/internal/common"
	"dynadoc/internal/reduce"
)

// Targets selects which kinds of members are decorated recursively.
type Targets uint8

const (
	TargetClass Targets = 1 << iota
	TargetFunction
	TargetModule

	TargetsNone Targets = 0
	TargetsAll          = TargetClass | TargetFunction | TargetModule
)

// Has reports whether every target in t2 is set.
func (t Targets) Has(t2 Targets) bool {
	return t&t2 == t2 && t2 != 0
}

// String returns the set targets joined with '|'.
func (t Targets) String() string {
	var names []string

	if t&TargetClass != 0 {
		names = append(names, "class")
	}

	if t&TargetFunction != 0 {
		names = append(names, "function")
	}

	if t&TargetModule != 0 {
		names = append(names, "module")
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

// VisibilityOrder decides when visibility is evaluated relative to
// description compilation.
type VisibilityOrder int

const (
	// VisibilityMarkersFirst consults Conceal and Reveal markers before the
	// description is compiled, so concealed attributes never compile theirs.
	VisibilityMarkersFirst VisibilityOrder = iota
	// VisibilityDescriptionFirst compiles the description before any
	// visibility check, so fragment diagnostics are reported for concealed
	// attributes too.
	VisibilityDescriptionFirst
)

// String returns a human-readable representation of the VisibilityOrder.
func (o VisibilityOrder) String() string {
	switch o {
	case VisibilityMarkersFirst:
		return "markers-first"
	case VisibilityDescriptionFirst:
		return "description-first"
	default:
		return common.UnknownStr
	}
}

// ClassIntrospector introspects classes that need special treatment. It
// reports false when it does not handle the class.
type ClassIntrospector func(
	possessor *Class,
	ctx *Context,
	control Control,
	annotations Annotations,
	cache *adjunct.Cache,
	table FragmentTable,
) (Informations, bool)

// ClassControl tunes class introspection.
type ClassControl struct {
	// Inheritance merges ancestor annotations, descendants winning.
	Inheritance bool
	// ScanAttributes reports unannotated data members.
	ScanAttributes bool
	// Introspectors are tried in order; the first that handles a class
	// replaces annotation and attribute introspection.
	Introspectors []ClassIntrospector
}

// ModuleControl tunes module introspection.
type ModuleControl struct {
	// ScanAttributes reports unannotated data members.
	ScanAttributes bool
	// HonorExports restricts attribute scanning to the module's export list
	// when it has one.
	HonorExports bool
}

// FunctionControl tunes function introspection.
type FunctionControl struct {
	// IncludeUnannotated reports parameters without annotations too.
	IncludeUnannotated bool
}

// Limiter adjusts the control for a subject about to be decorated.
type Limiter func(subject Subject, control Control) Control

// Control governs what introspection does.
type Control struct {
	Enable   bool
	Class    ClassControl
	Module   ModuleControl
	Function FunctionControl
	Targets  Targets
	Limiters []Limiter

	VisibilityOrder VisibilityOrder
	// MaxDepth is the annotation nesting ceiling; zero means
	// reduce.DefaultMaxDepth and a negative value disables the ceiling.
	MaxDepth int
}

// DefaultControl enables introspection without recursion or scanning.
func DefaultControl() Control {
	return Control{Enable: true}
}

// WithLimit returns a copy of the control narrowed by limit.
func (c Control) WithLimit(limit Limit) Control {
	if limit.Disable {
		c.Enable = false
	}

	c.Targets &^= limit.TargetsExclusions

	return c
}

// EvaluateLimitsFor applies the limiters to subject in order.
func (c Control) EvaluateLimitsFor(subject Subject) Control {
	for _, limiter := range c.Limiters {
		c = limiter(subject, c)
	}

	return c
}

func (c Control) reducerOptions() []reduce.Option {
	switch {
	case c.MaxDepth > 0:
		return []reduce.Option{reduce.WithMaxDepth(c.MaxDepth)}
	case c.MaxDepth < 0:
		return []reduce.Option{reduce.WithMaxDepth(0)}
	default:
		return nil
	}
}
