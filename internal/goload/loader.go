package goload

import (
	"context"
	"errors"
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"reflect"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/tools/go/packages"

	"dynadoc/internal/annotation"
	"dynadoc/internal/diagnostic"
	"dynadoc/internal/introspect"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// DefaultCacheSize is the number of patterns whose modules are kept.
const DefaultCacheSize = 64

// Loader loads Go packages as module subjects.
type Loader struct {
	dir      string
	notifier diagnostic.Notifier
	cache    *lru.Cache[string, []*introspect.Module]
	size     int
}

// Option configures a Loader.
type Option func(*Loader)

// WithDir sets the directory patterns are resolved from.
func WithDir(dir string) Option {
	return func(l *Loader) { l.dir = dir }
}

// WithNotifier sets where malformed documentation tags are reported.
func WithNotifier(n diagnostic.Notifier) Option {
	return func(l *Loader) { l.notifier = n }
}

// WithCacheSize sets how many patterns keep their loaded modules.
func WithCacheSize(n int) Option {
	return func(l *Loader) { l.size = n }
}

// New creates a Loader.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{notifier: diagnostic.Discard, size: DefaultCacheSize}
	for _, opt := range opts {
		opt(l)
	}

	cache, err := lru.New[string, []*introspect.Module](l.size)
	if err != nil {
		return nil, fmt.Errorf("failed to create module cache: %w", err)
	}

	l.cache = cache

	return l, nil
}

// Load loads the packages matched by patterns. Patterns are standard Go
// package patterns (e.g., "./store", "dynadoc/store"). Modules loaded for a
// pattern earlier are returned again without reloading.
func (l *Loader) Load(ctx context.Context, patterns ...string) ([]*introspect.Module, error) {
	var modules []*introspect.Module

	for _, pattern := range patterns {
		key := l.dir + "\x00" + pattern

		if cached, ok := l.cache.Get(key); ok {
			modules = append(modules, cached...)
			continue
		}

		loaded, err := l.load(ctx, pattern)
		if err != nil {
			return nil, err
		}

		l.cache.Add(key, loaded)
		modules = append(modules, loaded...)
	}

	return modules, nil
}

func (l *Loader) load(ctx context.Context, pattern string) ([]*introspect.Module, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     l.dir,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	conv := newConverter()
	modules := make([]*introspect.Module, 0, len(pkgs))

	for _, pkg := range pkgs {
		modules = append(modules, l.processPackage(pkg, conv))
	}

	return modules, nil
}

// packageBuilder turns one loaded package into a module subject.
type packageBuilder struct {
	notifier diagnostic.Notifier
	conv     *converter
	pkg      *types.Package
	docs     docIndex
	classes  map[*types.TypeName]*introspect.Class
}

func (l *Loader) processPackage(pkg *packages.Package, conv *converter) *introspect.Module {
	b := &packageBuilder{
		notifier: l.notifier,
		conv:     conv,
		pkg:      pkg.Types,
		docs:     indexDocs(pkg.Syntax),
		classes:  make(map[*types.TypeName]*introspect.Class),
	}

	return b.module()
}

func (b *packageBuilder) module() *introspect.Module {
	scope := b.pkg.Scope()

	m := &introspect.Module{
		Name:    b.pkg.Path(),
		Doc:     b.docs.pkg,
		Exports: make([]string, 0),
	}

	// Classes first so that bases and enum members can refer to them.
	for _, name := range scope.Names() {
		if obj, ok := scope.Lookup(name).(*types.TypeName); ok && !obj.IsAlias() {
			b.classes[obj] = &introspect.Class{
				Name:   name,
				Module: m.Name,
				Doc:    b.docs.text(obj.Pos()),
			}
		}
	}

	for obj, class := range b.classes {
		b.fillClass(obj, class)
	}

	for _, name := range scope.Names() {
		if token.IsExported(name) {
			m.Exports = append(m.Exports, name)
		}

		switch obj := scope.Lookup(name).(type) {
		case *types.TypeName:
			if obj.IsAlias() {
				m.Annotations = append(m.Annotations, introspect.Annotation{
					Name: name,
					Expr: wrap(annotation.TypeAlias, b.docMarkers(obj.Pos())),
				})
				m.Members = append(m.Members, introspect.Member{Name: name, Value: b.conv.convert(obj.Type())})

				continue
			}

			m.Members = append(m.Members, introspect.Member{Name: name, Value: b.classes[obj], Callable: true})

		case *types.Func:
			m.Members = append(m.Members, introspect.Member{
				Name:     name,
				Value:    b.function(obj, name),
				Callable: true,
			})

		case *types.Const:
			if b.enumOwner(obj) != nil {
				continue
			}

			m.Annotations = append(m.Annotations, introspect.Annotation{
				Name: name,
				Expr: wrap(b.conv.convert(obj.Type()), b.docMarkers(obj.Pos())),
			})
			m.Members = append(m.Members, introspect.Member{Name: name, Value: constValue(obj.Val())})

		case *types.Var:
			m.Annotations = append(m.Annotations, introspect.Annotation{
				Name: name,
				Expr: wrap(b.conv.convert(obj.Type()), b.docMarkers(obj.Pos())),
			})
		}
	}

	return m
}

func (b *packageBuilder) fillClass(obj *types.TypeName, class *introspect.Class) {
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return
	}

	switch u := named.Underlying().(type) {
	case *types.Struct:
		b.structFields(class, u)
	case *types.Interface:
		for i := range u.NumExplicitMethods() {
			method := u.ExplicitMethod(i)
			class.Members = append(class.Members, introspect.Member{
				Name:     method.Name(),
				Value:    b.function(method, class.Name+"."+method.Name()),
				Callable: true,
			})
		}
	}

	for i := range named.NumMethods() {
		method := named.Method(i)
		class.Members = append(class.Members, introspect.Member{
			Name:     method.Name(),
			Value:    b.function(method, class.Name+"."+method.Name()),
			Callable: true,
		})
	}

	b.enumerators(obj, class)
}

func (b *packageBuilder) structFields(class *introspect.Class, st *types.Struct) {
	for i := range st.NumFields() {
		field := st.Field(i)

		if field.Embedded() {
			if base := b.classes[embeddedName(field.Type())]; base != nil {
				class.Bases = append(class.Bases, base)
			}

			continue
		}

		markers := b.docMarkers(field.Pos())

		tagged, err := tagMarkers(reflect.StructTag(st.Tag(i)))
		if err != nil {
			b.notifier.Notify(diagnostic.LevelError, fmt.Sprintf(
				"Invalid %s tag on %s.%s: %v", OptionsTag, class.FullName(), field.Name(), err))
		}

		class.Annotations = append(class.Annotations, introspect.Annotation{
			Name: field.Name(),
			Expr: wrap(b.conv.convert(field.Type()), append(markers, tagged...)),
		})
	}
}

// enumerators adds the package constants of the named type to class.
func (b *packageBuilder) enumerators(obj *types.TypeName, class *introspect.Class) {
	scope := b.pkg.Scope()

	var members []introspect.Member

	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if !ok || b.enumOwner(c) != obj {
			continue
		}

		members = append(members, introspect.Member{Name: name, Value: constValue(c.Val())})
	}

	if len(members) == 0 {
		return
	}

	class.Enum = true
	class.Members = append(members, class.Members...)
}

// enumOwner returns the package-local named type of c, if any.
func (b *packageBuilder) enumOwner(c *types.Const) *types.TypeName {
	named, ok := c.Type().(*types.Named)
	if !ok || named.Obj().Pkg() != b.pkg {
		return nil
	}

	if _, ok := named.Underlying().(*types.Basic); !ok {
		return nil
	}

	return named.Obj()
}

func (b *packageBuilder) function(fn *types.Func, qualName string) *introspect.Function {
	sig, _ := fn.Type().(*types.Signature)

	f := &introspect.Function{
		Name:     fn.Name(),
		QualName: qualName,
		Module:   b.pkg.Path(),
		Doc:      b.docs.text(fn.Pos()),
	}

	if sig == nil {
		f.Native = true
		return f
	}

	params := sig.Params()
	for i := range params.Len() {
		param := params.At(i)

		name := param.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}

		kind := introspect.ParameterPositionalOrKeyword
		typ := param.Type()

		if sig.Variadic() && i == params.Len()-1 {
			kind = introspect.ParameterVariadic

			if s, ok := typ.(*types.Slice); ok {
				typ = s.Elem()
			}
		}

		f.Parameters = append(f.Parameters, introspect.Parameter{Name: name, Kind: kind})
		f.Annotations = append(f.Annotations, introspect.Annotation{Name: name, Expr: b.conv.convert(typ)})
	}

	ret, markers := b.returns(fn, sig.Results())
	f.Annotations = append(f.Annotations, introspect.Annotation{
		Name: introspect.ReturnName,
		Expr: wrap(ret, markers),
	})

	return f
}

// returns converts the results of fn. A trailing error result becomes an
// exception declaration: one per //dynadoc:raises directive, or a generic
// one naming error.
func (b *packageBuilder) returns(fn *types.Func, results *types.Tuple) (annotation.Expr, []annotation.Marker) {
	var raises []annotation.Marker

	for _, directive := range b.docs.directives(fn.Pos()) {
		verb, rest, _ := strings.Cut(directive, " ")
		if verb != "raises" {
			continue
		}

		name, description, _ := strings.Cut(strings.TrimSpace(rest), " ")
		if name == "" {
			continue
		}

		raises = append(raises, annotation.NewRaises(strings.TrimSpace(description), b.raisedType(name)))
	}

	n := results.Len()
	if n > 0 && types.Identical(results.At(n-1).Type(), errorType) {
		vars := make([]*types.Var, 0, n-1)
		for i := range n - 1 {
			vars = append(vars, results.At(i))
		}

		if len(raises) == 0 {
			raises = append(raises, annotation.NewRaises("", annotation.GoError))
		}

		return b.conv.results(types.NewTuple(vars...)), raises
	}

	return b.conv.results(results), raises
}

// raisedType resolves a name used in a raises directive. Package-level
// types convert normally; other names, such as sentinel error variables,
// are named in place.
func (b *packageBuilder) raisedType(name string) annotation.Expr {
	if obj, ok := b.pkg.Scope().Lookup(name).(*types.TypeName); ok {
		return b.conv.convert(obj.Type())
	}

	return annotation.NewType(b.pkg.Path(), name)
}

func (b *packageBuilder) docMarkers(pos token.Pos) []annotation.Marker {
	if text := b.docs.text(pos); text != "" {
		return []annotation.Marker{annotation.Doc{Documentation: text}}
	}

	return nil
}

var errorType = types.Universe.Lookup("error").Type()

func embeddedName(t types.Type) *types.TypeName {
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}

	if named, ok := types.Unalias(t).(*types.Named); ok {
		return named.Obj()
	}

	return nil
}

// constValue converts a constant to the Go value it denotes.
func constValue(v constant.Value) any {
	switch v.Kind() {
	case constant.String:
		return constant.StringVal(v)
	case constant.Bool:
		return constant.BoolVal(v)
	case constant.Int:
		if i, ok := constant.Int64Val(v); ok {
			return i
		}

		return v.ExactString()
	case constant.Float:
		f, _ := constant.Float64Val(v)
		return f
	default:
		return v.ExactString()
	}
}
