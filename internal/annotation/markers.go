package annotation

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=ValuationMode -trimprefix=Valuation -output=valuationmode_string.go
//go:generate go tool stringer -type=Visibility -trimprefix=Visibility -output=visibility_string.go

// Marker is an auxiliary value carried by an Annotated expression.
//
// The set of markers is closed: Doc, Findex, *Raises, Default, Visibility
// and *Opaque.
type Marker interface {
	fmt.Stringer
	marker()
}

// Doc is a description of an argument, attribute or return value.
type Doc struct {
	Documentation string
}

func (d Doc) String() string { return "Doc(" + quote(d.Documentation) + ")" }
func (Doc) marker()          {}

// Findex names a documentation fragment in a fragments table.
type Findex struct {
	Name string
}

func (f Findex) String() string { return "Findex(" + quote(f.Name) + ")" }
func (Findex) marker()          {}

// Raises declares exception classes which can be raised, with a description.
// It belongs on return annotations.
type Raises struct {
	Classes     []Expr
	Description string
}

// NewRaises creates an exception declaration.
func NewRaises(description string, classes ...Expr) *Raises {
	return &Raises{Classes: classes, Description: description}
}

// Union folds the declared classes into a single expression.
func (r *Raises) Union() Expr {
	return UnionOf(r.Classes...)
}

func (r *Raises) String() string {
	parts := make([]string, 0, len(r.Classes)+1)
	for _, c := range r.Classes {
		parts = append(parts, Format(c))
	}

	if r.Description != "" {
		parts = append(parts, quote(r.Description))
	}

	return "Raises(" + strings.Join(parts, ", ") + ")"
}

func (*Raises) marker() {}

// ValuationMode controls how a default value is presented.
type ValuationMode int

const (
	ValuationAccept    ValuationMode = iota // show the assigned value
	ValuationSuppress                       // show no value
	ValuationSurrogate                      // show a substitute description
)

// Default attaches a default valuation policy.
type Default struct {
	Mode      ValuationMode
	Surrogate string // used with ValuationSurrogate
}

// Common default policies.
var (
	AcceptDefault   = Default{Mode: ValuationAccept}
	SuppressDefault = Default{Mode: ValuationSuppress}
)

// SurrogateDefault returns a policy that shows text in place of the value.
func SurrogateDefault(text string) Default {
	return Default{Mode: ValuationSurrogate, Surrogate: text}
}

func (d Default) String() string {
	if d.Mode == ValuationSurrogate {
		return "Default(" + d.Mode.String() + ", " + quote(d.Surrogate) + ")"
	}

	return "Default(" + d.Mode.String() + ")"
}

func (Default) marker() {}

// Visibility overrides the visibility predicate for an attribute.
type Visibility int

const (
	VisibilityDefault Visibility = iota // defer to the visibility predicate
	VisibilityConceal                   // hide regardless of the predicate
	VisibilityReveal                    // show regardless of the predicate
)

func (Visibility) marker() {}

// Opaque carries foreign metadata. It is preserved but never interpreted.
type Opaque struct {
	Value any
}

func (o *Opaque) String() string { return fmt.Sprintf("%v", o.Value) }
func (*Opaque) marker()          {}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
