package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"dynadoc/internal/diagnostic"
	"dynadoc/internal/introspect"
	"dynadoc/internal/render"
)

// CurrentVersion is the configuration schema version written by Marshal.
const CurrentVersion = "1"

// ErrUnsupportedVersion is returned for files declaring an unknown version.
var ErrUnsupportedVersion = errors.New("unsupported config version")

// File is the root of a configuration file.
type File struct {
	// Version of the configuration schema.
	Version string `yaml:"version,omitempty" jsonschema:"enum=1"`

	// Style selects the rendering of formatted annotations.
	Style string `yaml:"style,omitempty" jsonschema:"enum=legible,enum=pep8"`

	// LocalNames leaves names of the documented package unqualified.
	LocalNames bool `yaml:"local_names,omitempty"`

	// Preserve keeps existing docstrings ahead of generated text.
	Preserve *bool `yaml:"preserve,omitempty"`

	// Notify is the lowest notification level reported.
	Notify string `yaml:"notify,omitempty" jsonschema:"enum=admonition,enum=error,enum=alert"`

	Introspection Introspection `yaml:"introspection,omitempty"`

	// Fragments are named text snippets referenced by findex markers.
	Fragments map[string]string `yaml:"fragments,omitempty"`
}

// Introspection mirrors introspect.Control.
type Introspection struct {
	Enable *bool `yaml:"enable,omitempty"`

	// Targets lists the member kinds decorated recursively.
	Targets []string `yaml:"targets,omitempty" jsonschema:"uniqueItems=true"`

	Class    ClassSection    `yaml:"class,omitempty"`
	Module   ModuleSection   `yaml:"module,omitempty"`
	Function FunctionSection `yaml:"function,omitempty"`

	VisibilityOrder string `yaml:"visibility_order,omitempty" jsonschema:"enum=markers-first,enum=description-first"`

	// MaxDepth bounds annotation nesting. Zero keeps the default and a
	// negative value disables the bound.
	MaxDepth int `yaml:"max_depth,omitempty"`
}

// ClassSection mirrors introspect.ClassControl.
type ClassSection struct {
	Inheritance    bool `yaml:"inheritance,omitempty"`
	ScanAttributes bool `yaml:"scan_attributes,omitempty"`
}

// ModuleSection mirrors introspect.ModuleControl.
type ModuleSection struct {
	ScanAttributes bool `yaml:"scan_attributes,omitempty"`
	HonorExports   bool `yaml:"honor_exports,omitempty"`
}

// FunctionSection mirrors introspect.FunctionControl.
type FunctionSection struct {
	IncludeUnannotated bool `yaml:"include_unannotated,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *File {
	f := &File{}
	applyDefaults(f)

	return f
}

// LoadFile loads and validates a configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	return f, nil
}

// Parse parses and validates configuration YAML.
func Parse(data []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&f)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&f)

	err = f.Validate()
	if err != nil {
		return nil, err
	}

	return &f, nil
}

func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.Style == "" {
		f.Style = render.StyleLegible.String()
	}

	if f.Notify == "" {
		f.Notify = diagnostic.LevelAdmonition.String()
	}

	if f.Preserve == nil {
		f.Preserve = ptr(true)
	}

	if f.Introspection.Enable == nil {
		f.Introspection.Enable = ptr(true)
	}
}

// Validate reports every invalid setting.
func (f *File) Validate() error {
	var errs []error

	if f.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnsupportedVersion, f.Version))
	}

	if _, err := render.ParseStyle(f.Style); err != nil {
		errs = append(errs, err)
	}

	if _, err := diagnostic.ParseLevel(f.Notify); err != nil {
		errs = append(errs, err)
	}

	if _, err := ParseTargets(f.Introspection.Targets); err != nil {
		errs = append(errs, err)
	}

	if _, err := ParseVisibilityOrder(f.Introspection.VisibilityOrder); err != nil {
		errs = append(errs, err)
	}

	for name := range f.Fragments {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, errors.New("fragment names must not be blank"))
			break
		}
	}

	return errors.Join(errs...)
}

// Control builds the introspection control described by the file.
func (f *File) Control() (introspect.Control, error) {
	in := f.Introspection

	targets, err := ParseTargets(in.Targets)
	if err != nil {
		return introspect.Control{}, err
	}

	order, err := ParseVisibilityOrder(in.VisibilityOrder)
	if err != nil {
		return introspect.Control{}, err
	}

	return introspect.Control{
		Enable: in.Enable == nil || *in.Enable,
		Class: introspect.ClassControl{
			Inheritance:    in.Class.Inheritance,
			ScanAttributes: in.Class.ScanAttributes,
			Introspectors:  introspect.DefaultIntrospectors(),
		},
		Module: introspect.ModuleControl{
			ScanAttributes: in.Module.ScanAttributes,
			HonorExports:   in.Module.HonorExports,
		},
		Function: introspect.FunctionControl{
			IncludeUnannotated: in.Function.IncludeUnannotated,
		},
		Targets:         targets,
		VisibilityOrder: order,
		MaxDepth:        in.MaxDepth,
	}, nil
}

// Renderer builds the renderer described by the file.
func (f *File) Renderer() (*render.Renderer, error) {
	style, err := render.ParseStyle(f.Style)
	if err != nil {
		return nil, err
	}

	r := render.New(style)
	r.LocalNames = f.LocalNames

	return r, nil
}

// Level returns the lowest notification level reported.
func (f *File) Level() (diagnostic.Level, error) {
	if f.Notify == "" {
		return diagnostic.LevelAdmonition, nil
	}

	return diagnostic.ParseLevel(f.Notify)
}

// Table returns the fragment table.
func (f *File) Table() introspect.FragmentTable {
	table := make(introspect.FragmentTable, len(f.Fragments))
	for name, text := range f.Fragments {
		table[name] = text
	}

	return table
}

// ShouldPreserve reports whether existing docstrings are kept.
func (f *File) ShouldPreserve() bool {
	return f.Preserve == nil || *f.Preserve
}

// ParseTargets parses target names. "all" and "none" are accepted too.
func ParseTargets(names []string) (introspect.Targets, error) {
	targets := introspect.TargetsNone

	for _, name := range names {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "class":
			targets |= introspect.TargetClass
		case "function":
			targets |= introspect.TargetFunction
		case "module":
			targets |= introspect.TargetModule
		case "all":
			targets |= introspect.TargetsAll
		case "none":
		default:
			return introspect.TargetsNone, fmt.Errorf("unknown target %q", name)
		}
	}

	return targets, nil
}

// ParseVisibilityOrder parses a visibility order name. Empty means
// markers-first.
func ParseVisibilityOrder(name string) (introspect.VisibilityOrder, error) {
	switch name {
	case "", introspect.VisibilityMarkersFirst.String():
		return introspect.VisibilityMarkersFirst, nil
	case introspect.VisibilityDescriptionFirst.String():
		return introspect.VisibilityDescriptionFirst, nil
	default:
		return 0, fmt.Errorf("unknown visibility order %q", name)
	}
}

// Marshal serializes a configuration to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a configuration to a file.
func WriteFile(path string, f *File) error {
	data, err := Marshal(f)
	if err != nil {
		return err
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}

	return nil
}

// Schema returns the JSON Schema of configuration files.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		ExpandedStruct:             true,
	}

	s := r.Reflect(new(File))
	s.Title = "dynadoc configuration"

	return json.MarshalIndent(s, "", "  ")
}

func ptr[T any](v T) *T {
	return &v
}
