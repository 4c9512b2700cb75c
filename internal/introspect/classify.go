package introspect

import (
	"fmt"
	"go/token"
	"strings"

	"dynadoc/internal/adjunct"
	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/match"
)

// maxSuggestions bounds the "did you mean" list for missing fragments.
const maxSuggestions = 3

// IsAttributeVisible is the default VisibilityDecider: an attribute is
// visible when it has a description or its name does not start with '_'.
func IsAttributeVisible(_ Subject, name string, _ annotation.Expr, description string) bool {
	return description != "" || !strings.HasPrefix(name, "_")
}

// IsExportedOrDescribed is a VisibilityDecider for Go subjects: an attribute
// is visible when it has a description or its name is exported.
func IsExportedOrDescribed(_ Subject, name string, _ annotation.Expr, description string) bool {
	return description != "" || token.IsExported(name)
}

// Visible applies the visibility overrides in bag and otherwise defers to
// the context's decider. Conceal outranks Reveal.
func Visible(
	ctx *Context,
	possessor Subject,
	name string,
	ann annotation.Expr,
	bag *adjunct.Adjuncts,
	description string,
) bool {
	switch bag.Visibility() {
	case annotation.VisibilityConceal:
		return false
	case annotation.VisibilityReveal:
		return true
	default:
		return ctx.VisibilityDecider(possessor, name, ann, description)
	}
}

// AssociationOf derives the association of an attribute from the traits
// collected while reducing its annotation.
func AssociationOf(possessor Subject, bag *adjunct.Adjuncts) Association {
	if _, ok := possessor.(*Module); ok {
		return AssociationModule
	}

	if bag.HasTrait(adjunct.TraitClassVar) {
		return AssociationClass
	}

	return AssociationInstance
}

// DefaultValuator returns the first default valuation marker in bag. Without
// one, subjects that have a default value accept it and others suppress.
func DefaultValuator(bag *adjunct.Adjuncts, hasDefault bool) annotation.Default {
	if d, ok := bag.Default(); ok {
		return d
	}

	if hasDefault {
		return annotation.AcceptDefault
	}

	return annotation.SuppressDefault
}

// CompileDescription joins the Doc markers and the table entries named by
// the Findex markers of bag, in order, with a blank line between fragments.
// Every fragment passes through the context's rectifier. Missing table
// entries are reported and skipped.
func CompileDescription(ctx *Context, bag *adjunct.Adjuncts, table FragmentTable) string {
	var fragments []string

	for _, extra := range bag.Extras {
		switch m := extra.(type) {
		case annotation.Doc:
			fragments = append(fragments, m.Documentation)

		case annotation.Findex:
			text, ok := table[m.Name]
			if !ok {
				ctx.Notify(diagnostic.LevelError, MissingFragmentMessage(m.Name, table))
				continue
			}

			fragments = append(fragments, text)
		}
	}

	for i, fragment := range fragments {
		fragments[i] = ctx.Rectify(fragment, FragmentSourceAnnotation)
	}

	return strings.Join(fragments, "\n\n")
}

// MissingFragmentMessage reports a fragment name absent from table, with
// suggestions for close names.
func MissingFragmentMessage(name string, table FragmentTable) string {
	message := fmt.Sprintf("Fragment '%s' not in provided table.", name)

	suggestions := match.Suggest(name, table.Names(), maxSuggestions)
	if len(suggestions) > 0 {
		message += " Did you mean: " + strings.Join(suggestions, ", ") + "?"
	}

	return message
}

// ExceptionsOf returns one record per exception declaration in bag.
// Declarations naming several classes are folded into a union.
func ExceptionsOf(bag *adjunct.Adjuncts) Informations {
	var informations Informations

	for _, raises := range bag.Raises() {
		informations = append(informations, &ExceptionInformation{
			InformationBase: InformationBase{
				Annotation:  raises.Union(),
				Description: raises.Description,
			},
		})
	}

	return informations
}
