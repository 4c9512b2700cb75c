package introspect

import (
	"fmt"
	"slices"

	"dynadoc/internal/adjunct"
	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/reduce"
)

// Introspect extracts information records from possessor.
//
// The cache must be fresh for each top-level call; a nil cache gets one.
// Introspect never fails: anomalies are reported through the context's
// notifier and degrade to partial output.
func Introspect(
	possessor Subject,
	ctx *Context,
	control Control,
	cache *adjunct.Cache,
	table FragmentTable,
) Informations {
	s := newSession(ctx, control, cache, table)

	switch p := possessor.(type) {
	case *Class:
		return s.class(p)
	case *Function:
		if p.Lambda {
			return nil
		}

		return s.function(p)
	case *Module:
		return s.module(p)
	default:
		return nil
	}
}

// EnumIntrospector reports the enumerators of enum classes as class
// attributes annotated with the class itself.
func EnumIntrospector(
	possessor *Class,
	_ *Context,
	_ Control,
	_ Annotations,
	_ *adjunct.Cache,
	_ FragmentTable,
) (Informations, bool) {
	if !possessor.Enum {
		return nil, false
	}

	var informations Informations

	for _, member := range possessor.Members {
		if member.IsCallable() {
			continue
		}

		informations = append(informations, &AttributeInformation{
			InformationBase: InformationBase{Annotation: possessor.Type()},
			Name:            member.Name,
			Association:     AssociationClass,
			Default:         annotation.SuppressDefault,
			Value:           member.Value,
			HasValue:        true,
		})
	}

	return informations, true
}

// DefaultIntrospectors returns the special-class introspectors enabled by default.
func DefaultIntrospectors() []ClassIntrospector {
	return []ClassIntrospector{EnumIntrospector}
}

type session struct {
	ctx     *Context
	control Control
	cache   *adjunct.Cache
	reducer *reduce.Reducer
	table   FragmentTable
}

func newSession(ctx *Context, control Control, cache *adjunct.Cache, table FragmentTable) *session {
	if ctx == nil {
		ctx = NewContext()
	} else {
		clone := *ctx
		clone.applyDefaults()
		ctx = &clone
	}

	if cache == nil {
		cache = adjunct.NewCache()
	}

	return &session{
		ctx:     ctx,
		control: control,
		cache:   cache,
		reducer: reduce.New(ctx.Notifier, cache, control.reducerOptions()...),
		table:   table,
	}
}

func (s *session) annotations(possessor AnnotationHolder) Annotations {
	annotations, err := s.ctx.AnnotationAccessor(possessor, s.ctx.Namespaces)
	if err != nil {
		s.ctx.Notify(diagnostic.LevelError, fmt.Sprintf(
			"Cannot access annotations for %s: %v", possessor.FullName(), err))

		return nil
	}

	return annotations
}

func (s *session) reduce(e annotation.Expr) (annotation.Expr, *adjunct.Adjuncts) {
	bag := adjunct.New()
	return s.reducer.Reduce(e, bag), bag
}

func (s *session) function(possessor *Function) Informations {
	annotations := s.annotations(possessor)
	if len(annotations) == 0 {
		return nil
	}

	parameters, err := s.ctx.SignatureAccessor(possessor)
	if err != nil {
		s.ctx.Notify(diagnostic.LevelError, fmt.Sprintf(
			"Could not assess signature for '%s'. Reason: %v", possessor.QualifiedName(), err))

		return nil
	}

	var informations Informations

	for _, param := range parameters {
		raw, ok := annotations.Get(param.Name)
		if !ok {
			if s.control.Function.IncludeUnannotated {
				informations = append(informations, &ArgumentInformation{
					Name:      param.Name,
					Parameter: param,
					Default:   DefaultValuator(adjunct.New(), param.HasDefault),
				})
			}

			continue
		}

		reduced, bag := s.reduce(raw)
		informations = append(informations, &ArgumentInformation{
			InformationBase: InformationBase{
				Annotation:  reduced,
				Description: CompileDescription(s.ctx, bag, s.table),
			},
			Name:      param.Name,
			Parameter: param,
			Default:   DefaultValuator(bag, param.HasDefault),
		})
	}

	if raw, ok := annotations.Get(ReturnName); ok {
		reduced, bag := s.reduce(raw)
		informations = append(informations, &ReturnInformation{
			InformationBase: InformationBase{
				Annotation:  reduced,
				Description: CompileDescription(s.ctx, bag, s.table),
			},
		})
		informations = append(informations, ExceptionsOf(bag)...)
	}

	return informations
}

func (s *session) class(possessor *Class) Informations {
	annotations := s.classAnnotations(possessor)

	for _, introspector := range s.control.Class.Introspectors {
		informations, ok := introspector(possessor, s.ctx, s.control, annotations, s.cache, s.table)
		if ok {
			return informations
		}
	}

	informations := s.attributes(possessor, annotations, possessor.Members)

	if s.control.Class.ScanAttributes {
		informations = append(informations,
			s.scanAttributes(possessor, annotations, AssociationClass, nil)...)
	}

	return informations
}

// classAnnotations merges ancestor annotations from most base to most
// derived when inheritance is enabled, so descendants win.
func (s *session) classAnnotations(possessor *Class) Annotations {
	if !s.control.Class.Inheritance {
		return s.annotations(possessor)
	}

	order, err := Linearize(possessor)
	if err != nil {
		s.ctx.Notify(diagnostic.LevelError, fmt.Sprintf(
			"Cannot linearize ancestors of %s: %v; using depth-first order.",
			possessor.FullName(), err))

		order = depthFirst(possessor)
	}

	var merged Annotations

	for _, class := range slices.Backward(order) {
		merged = merged.Merge(s.annotations(class))
	}

	return merged
}

func (s *session) module(possessor *Module) Informations {
	annotations := s.annotations(possessor)

	informations := s.attributes(possessor, annotations, possessor.Members)

	if s.control.Module.ScanAttributes {
		var exported func(string) bool
		if s.control.Module.HonorExports && possessor.Exports != nil {
			exported = func(name string) bool { return slices.Contains(possessor.Exports, name) }
		}

		informations = append(informations,
			s.scanAttributes(possessor, annotations, AssociationModule, exported)...)
	}

	return informations
}

func (s *session) attributes(possessor Subject, annotations Annotations, members []Member) Informations {
	var informations Informations

	for _, entry := range annotations {
		reduced, bag := s.reduce(entry.Expr)

		if s.control.VisibilityOrder == VisibilityMarkersFirst &&
			bag.Visibility() == annotation.VisibilityConceal {
			continue
		}

		description := CompileDescription(s.ctx, bag, s.table)
		if !Visible(s.ctx, possessor, entry.Name, reduced, bag, description) {
			continue
		}

		record := &AttributeInformation{
			InformationBase: InformationBase{
				Annotation:  reduced,
				Description: description,
			},
			Name:        entry.Name,
			Association: AssociationOf(possessor, bag),
		}

		if i := slices.IndexFunc(members, func(m Member) bool { return m.Name == entry.Name }); i >= 0 {
			record.Value = members[i].Value
			record.HasValue = true
		}

		record.Default = DefaultValuator(bag, record.HasValue)

		informations = append(informations, record)
	}

	return informations
}

// scanAttributes reports data members that carry no annotation. A non-nil
// allow restricts the names considered.
func (s *session) scanAttributes(
	possessor MemberLister,
	annotations Annotations,
	association Association,
	allow func(string) bool,
) Informations {
	var informations Informations

	empty := adjunct.New()

	for _, member := range possessor.MemberList() {
		if annotations.Has(member.Name) {
			continue
		}

		if allow != nil && !allow(member.Name) {
			continue
		}

		if !Visible(s.ctx, possessor, member.Name, nil, empty, "") {
			continue
		}

		if member.IsCallable() {
			continue
		}

		informations = append(informations, &AttributeInformation{
			Name:        member.Name,
			Association: association,
			Default:     annotation.AcceptDefault,
			Value:       member.Value,
			HasValue:    true,
		})
	}

	return informations
}
