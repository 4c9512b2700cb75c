package adjunct

import (
	"maps"
	"slices"

	"dynadoc/internal/annotation"
)

// Trait names recorded for well-known structural wrappers.
const (
	TraitClassVar = "ClassVar"
	TraitFinal    = "Final"
)

// Adjuncts collects markers and structural traits encountered while an
// annotation is reduced.
type Adjuncts struct {
	// Extras holds markers in the order they were unwrapped.
	Extras []annotation.Marker
	// Traits holds the names of stripped structural wrappers.
	Traits map[string]struct{}
}

// New creates an empty Adjuncts.
func New() *Adjuncts {
	return &Adjuncts{Traits: make(map[string]struct{})}
}

// Seeded creates an Adjuncts holding only the given trait.
func Seeded(trait string) *Adjuncts {
	a := New()
	a.AddTrait(trait)

	return a
}

// Copy returns an independent copy.
func (a *Adjuncts) Copy() *Adjuncts {
	return &Adjuncts{
		Extras: slices.Clone(a.Extras),
		Traits: maps.Clone(a.Traits),
	}
}

// AddExtras appends markers.
func (a *Adjuncts) AddExtras(extras ...annotation.Marker) {
	a.Extras = append(a.Extras, extras...)
}

// AddTrait records a structural trait.
func (a *Adjuncts) AddTrait(trait string) {
	if a.Traits == nil {
		a.Traits = make(map[string]struct{})
	}

	a.Traits[trait] = struct{}{}
}

// HasTrait returns true if the trait was recorded.
func (a *Adjuncts) HasTrait(trait string) bool {
	_, ok := a.Traits[trait]
	return ok
}

// TraitNames returns the recorded traits in sorted order.
func (a *Adjuncts) TraitNames() []string {
	return slices.Sorted(maps.Keys(a.Traits))
}

// Visibility returns the overriding visibility. Conceal outranks Reveal
// regardless of marker order; without either the result is VisibilityDefault.
func (a *Adjuncts) Visibility() annotation.Visibility {
	result := annotation.VisibilityDefault

	for _, extra := range a.Extras {
		switch extra {
		case annotation.VisibilityConceal:
			return annotation.VisibilityConceal
		case annotation.VisibilityReveal:
			result = annotation.VisibilityReveal
		}
	}

	return result
}

// Default returns the first default valuation marker.
func (a *Adjuncts) Default() (annotation.Default, bool) {
	for _, extra := range a.Extras {
		if d, ok := extra.(annotation.Default); ok {
			return d, true
		}
	}

	return annotation.Default{}, false
}

// Raises returns all exception declarations in order.
func (a *Adjuncts) Raises() []*annotation.Raises {
	var raises []*annotation.Raises

	for _, extra := range a.Extras {
		if r, ok := extra.(*annotation.Raises); ok {
			raises = append(raises, r)
		}
	}

	return raises
}
