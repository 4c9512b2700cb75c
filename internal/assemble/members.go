package assemble

import (
	"fmt"
	"strings"

	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/introspect"
)

// fields points at the assembly-related fields of a subject.
type fields struct {
	doc       *string
	fragments []annotation.Marker
	limit     *introspect.Limit
}

func fieldsOf(subject introspect.Subject) fields {
	switch s := subject.(type) {
	case *introspect.Function:
		return fields{doc: &s.Doc, fragments: s.Fragments, limit: s.Limit}
	case *introspect.Class:
		return fields{doc: &s.Doc, fragments: s.Fragments, limit: s.Limit}
	case *introspect.Module:
		return fields{doc: &s.Doc, fragments: s.Fragments, limit: s.Limit}
	default:
		return fields{}
	}
}

func (w *walk) classMembers(class *introspect.Class, control introspect.Control) {
	path := NewPath(class.FullName())

	for _, member := range class.Members {
		subject := considerClassMember(member, control, class.Module, class.QualifiedName())
		if subject == nil {
			continue
		}

		w.decorateMember(subject, control, path.Member(member.Name))
	}
}

func (w *walk) moduleMembers(module *introspect.Module, control introspect.Control) {
	path := NewPath(module.Name)

	for _, member := range module.Members {
		subject := considerModuleMember(member, control, module.Name)
		if subject == nil {
			continue
		}

		w.decorateMember(subject, control, path.Member(member.Name))
	}
}

func (w *walk) decorateMember(subject introspect.Subject, control introspect.Control, path Path) {
	fqname := path.String()

	fragments := w.collectFragments(subject, fqname)
	control = w.limit(subject, control, fqname).EvaluateLimitsFor(subject)

	w.decorate(subject, control, fragments, introspect.FragmentSourceAttribute)
}

// collectFragments returns the fragments carried by subject, reporting and
// dropping those which are neither Doc nor Findex.
func (w *walk) collectFragments(subject introspect.Subject, fqname string) []annotation.Marker {
	carried := fieldsOf(subject).fragments
	fragments := make([]annotation.Marker, 0, len(carried))

	for _, fragment := range carried {
		switch fragment.(type) {
		case annotation.Doc, annotation.Findex:
			fragments = append(fragments, fragment)
		default:
			w.ctx.Notify(diagnostic.LevelError, fmt.Sprintf("Invalid fragment on %s: %v", fqname, fragment))
		}
	}

	return fragments
}

func (w *walk) limit(subject introspect.Subject, control introspect.Control, fqname string) introspect.Control {
	limit := fieldsOf(subject).limit
	if limit == nil {
		return control
	}

	if limit.TargetsExclusions&^introspect.TargetsAll != 0 {
		w.ctx.Notify(diagnostic.LevelError, fmt.Sprintf("Invalid introspection limit on %s: %+v", fqname, *limit))
		return control
	}

	return control.WithLimit(*limit)
}

// isSubmodule reports whether name lies beneath the module parent. Both
// dotted and slash-separated paths are recognized.
func isSubmodule(name, parent string) bool {
	return strings.HasPrefix(name, parent+".") || strings.HasPrefix(name, parent+"/")
}

func considerClassMember(member introspect.Member, control introspect.Control, module, qualName string) introspect.Subject {
	switch v := member.Value.(type) {
	case *introspect.Module:
		if control.Targets.Has(introspect.TargetModule) && isSubmodule(v.Name, module) {
			return v
		}
	case *introspect.Class:
		if control.Targets.Has(introspect.TargetClass) && ownedBy(v.Module, v.QualifiedName(), module, qualName) {
			return v
		}
	case *introspect.Function:
		if control.Targets.Has(introspect.TargetFunction) && !v.Lambda &&
			ownedBy(v.Module, v.QualifiedName(), module, qualName) {
			return v
		}
	}

	return nil
}

func considerModuleMember(member introspect.Member, control introspect.Control, module string) introspect.Subject {
	switch v := member.Value.(type) {
	case *introspect.Module:
		if control.Targets.Has(introspect.TargetModule) && isSubmodule(v.Name, module) {
			return v
		}
	case *introspect.Class:
		if control.Targets.Has(introspect.TargetClass) && v.Module != "" && v.Module == module {
			return v
		}
	case *introspect.Function:
		if control.Targets.Has(introspect.TargetFunction) && !v.Lambda && v.Module != "" && v.Module == module {
			return v
		}
	}

	return nil
}

// ownedBy reports whether a member defined in module with qualName is
// nested in the class parentQualName of parentModule.
func ownedBy(module, qualName, parentModule, parentQualName string) bool {
	return module != "" && module == parentModule && strings.HasPrefix(qualName, parentQualName+".")
}
