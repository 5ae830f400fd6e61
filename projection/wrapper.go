/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package projection

import (
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/suparena/projector/adapter"
	"github.com/suparena/projector/container"
	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/mapper"
	"github.com/suparena/projector/model"
)

// Wrapper presents a projected instance: the explicitly selected values of its
// container, backed by the full source instance for everything else.
//
// A Wrapper is not safe for concurrent use. It memoizes its schema type, fallback
// adapter and container lookup table on first use; build one per projected instance
// and consume it from a single goroutine.
type Wrapper struct {
	lookup      model.Lookup
	container   *container.Container
	instance    any
	useFallback bool
	typeName    string
	elementType reflect.Type
	read        adapter.ReaderFunc

	resolved   bool
	schemaType *model.SchemaType
	resolveErr error

	containerValues map[string]any
	fallback        *adapter.Fallback
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithContainer sets the explicitly selected values. Without a container every
// property comes from the fallback instance.
func WithContainer(c *container.Container) Option {
	return func(w *Wrapper) {
		w.container = c
	}
}

// WithInstance sets the source instance and whether lookups may fall back to it.
func WithInstance(instance any, useForFallback bool) Option {
	return func(w *Wrapper) {
		w.instance = instance
		w.useFallback = useForFallback
	}
}

// WithTypeName overrides native type resolution with a declared schema type name.
func WithTypeName(name string) Option {
	return func(w *Wrapper) {
		w.typeName = name
	}
}

// WithReader replaces the property reader used on the fallback instance.
func WithReader(read adapter.ReaderFunc) Option {
	return func(w *Wrapper) {
		w.read = read
	}
}

// New creates a wrapper whose element type is T. When T is an interface type the
// element type is taken from the dynamic type of the instance.
func New[T any](lookup model.Lookup, opts ...Option) *Wrapper {
	w := &Wrapper{lookup: lookup}
	for _, opt := range opts {
		opt(w)
	}

	w.elementType = reflect.TypeOf((*T)(nil)).Elem()
	if w.elementType.Kind() == reflect.Interface {
		w.elementType = nil
		if w.instance != nil {
			w.elementType = reflect.TypeOf(w.instance)
		}
	}
	for w.elementType != nil && w.elementType.Kind() == reflect.Ptr {
		w.elementType = w.elementType.Elem()
	}
	return w
}

// NewDynamic creates a wrapper whose element type is the dynamic type of its instance.
func NewDynamic(lookup model.Lookup, opts ...Option) *Wrapper {
	return New[any](lookup, opts...)
}

// ElementType returns the Go type used for native schema resolution, or nil.
func (w *Wrapper) ElementType() reflect.Type {
	return w.elementType
}

// Container returns the wrapped container, or nil.
func (w *Wrapper) Container() *container.Container {
	return w.container
}

// Instance returns the source instance, or nil.
func (w *Wrapper) Instance() any {
	return w.instance
}

// SchemaType resolves the schema type governing the wrapper, once. A declared type name
// is looked up in the model; otherwise the element type is resolved natively. A miss is
// an UnknownTypeError and is remembered like a hit.
func (w *Wrapper) SchemaType() (*model.SchemaType, error) {
	if !w.resolved {
		w.schemaType, w.resolveErr = w.resolveSchemaType()
		w.resolved = true
	}
	return w.schemaType, w.resolveErr
}

func (w *Wrapper) resolveSchemaType() (*model.SchemaType, error) {
	if w.lookup == nil {
		return nil, errors.NewValidationError("model", "wrapper has no model")
	}

	if w.typeName != "" {
		st, ok := w.lookup.FindType(w.typeName)
		if !ok {
			return nil, errors.NewUnknownTypeError(w.typeName)
		}
		return st, nil
	}

	if w.elementType == nil {
		return nil, errors.NewUnknownTypeError("<untyped>")
	}
	st, ok := w.lookup.ResolveNative(w.elementType)
	if !ok {
		return nil, errors.NewUnknownTypeError(w.elementType.String())
	}
	return st, nil
}

// TryGetProperty returns the value of a property. A value in the container always
// wins, auto-selected or not; otherwise the fallback instance is consulted when
// fallback is enabled.
func (w *Wrapper) TryGetProperty(name string) (any, bool) {
	if w.container != nil {
		if v, ok := w.containerLookup()[name]; ok {
			return v, true
		}
	}

	if w.fallbackActive() {
		return w.fallbackAdapter().TryGetProperty(name)
	}
	return nil, false
}

// Key returns the key values of an entity-typed projection.
func (w *Wrapper) Key() (map[string]any, bool) {
	st, err := w.SchemaType()
	if err != nil || !st.IsEntity() {
		return nil, false
	}
	names := st.Key()
	if len(names) == 0 {
		return nil, false
	}
	key := make(map[string]any, len(names))
	for _, name := range names {
		v, ok := w.TryGetProperty(name)
		if !ok {
			return nil, false
		}
		key[name] = v
	}
	return key, true
}

// ToMap materializes the projection with the identity mapper.
func (w *Wrapper) ToMap() (map[string]any, error) {
	return w.ToMapWith(mapper.DefaultProvider)
}

// ToMapWith materializes the projection: the container's requested entries, then, when
// fallback is enabled, every declared property found through TryGetProperty. Keys are
// produced by the mapper the provider selects for the schema type.
func (w *Wrapper) ToMapWith(provider mapper.Provider) (map[string]any, error) {
	fields, err := w.ToFields(provider)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out, nil
}

// ToFields is ToMapWith preserving order: container entries in container order, then
// fallback-only properties in declaration order. A key produced twice keeps its first
// position; container entries are never replaced by another property's value.
func (w *Wrapper) ToFields(provider mapper.Provider) ([]container.Field, error) {
	if provider == nil {
		return nil, errors.ErrNullMapperProvider
	}
	if w.container == nil && !w.fallbackActive() {
		return []container.Field{}, nil
	}

	st, err := w.SchemaType()
	if err != nil {
		return nil, err
	}

	pm := provider(w.lookup, st)
	if pm == nil {
		return nil, errors.NewInvalidMapperError(st.Name())
	}

	fields, err := w.container.ToFields(pm, false)
	if err != nil {
		var ipm *errors.InvalidPropertyMappingError
		if stderrors.As(err, &ipm) {
			return nil, errors.NewInvalidPropertyMappingError(st.Name(), ipm.Property)
		}
		return nil, err
	}

	seeded := len(fields)
	pos := make(map[string]int, len(fields))
	for i, f := range fields {
		pos[f.Key] = i
	}

	if w.fallbackActive() {
		for _, p := range st.Properties() {
			v, ok := w.TryGetProperty(p.Name)
			if !ok {
				continue
			}
			key := pm.MapProperty(p.Name)
			if strings.TrimSpace(key) == "" {
				return nil, errors.NewInvalidPropertyMappingError(st.Name(), p.Name)
			}
			f := container.Field{Key: key, Property: p.Name, Value: v}
			if i, seen := pos[key]; seen {
				// a different property mapped onto a container key does not replace it
				if i >= seeded || fields[i].Property == p.Name {
					fields[i] = f
				}
				continue
			}
			pos[key] = len(fields)
			fields = append(fields, f)
		}
	}

	return fields, nil
}

func (w *Wrapper) fallbackActive() bool {
	return w.useFallback && w.instance != nil
}

// containerLookup builds the name -> value table of the container, auto-selected
// entries included, on first use.
func (w *Wrapper) containerLookup() map[string]any {
	if w.containerValues == nil {
		entries := w.container.Entries()
		w.containerValues = make(map[string]any, len(entries))
		for _, e := range entries {
			w.containerValues[e.Name] = e.Value
		}
	}
	return w.containerValues
}

// fallbackAdapter builds the fallback adapter on first use. An unresolvable schema
// type yields the zero Fallback, which finds nothing.
func (w *Wrapper) fallbackAdapter() adapter.Fallback {
	if w.fallback == nil {
		var fb adapter.Fallback
		if st, err := w.SchemaType(); err == nil {
			fb = adapter.NewFallback(w.instance, st, w.read)
		}
		w.fallback = &fb
	}
	return *w.fallback
}
