/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/suparena/projector/errors"
)

// Lookup is the read side of a model that projections resolve types through.
type Lookup interface {
	// FindType resolves a declared type name.
	FindType(name string) (*SchemaType, bool)
	// ResolveNative resolves the schema type governing a Go type.
	ResolveNative(t reflect.Type) (*SchemaType, bool)
}

// Model is the schema registry: the set of structured types plus the bindings from
// Go types to those schema types.
//
// Registration is expected during initialization. Lookups are safe for concurrent use;
// the native-type cache is filled on first use and shared by every caller.
type Model struct {
	namespace string

	mu       sync.RWMutex
	types    map[string]*SchemaType
	order    []string
	bindings map[reflect.Type]string

	native  sync.Map // map[reflect.Type]*SchemaType
	metrics *cacheMetrics
}

// Option configures a Model.
type Option func(*Model) error

// WithNamespace sets the namespace short type names are qualified with.
func WithNamespace(ns string) Option {
	return func(m *Model) error {
		m.namespace = strings.TrimSuffix(ns, ".")
		return nil
	}
}

// New creates an empty model.
func New(opts ...Option) (*Model, error) {
	m := &Model{
		types:    make(map[string]*SchemaType),
		bindings: make(map[reflect.Type]string),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Namespace returns the model namespace.
func (m *Model) Namespace() string {
	return m.namespace
}

// Qualify prefixes a short name with the model namespace. Names that already contain
// a dot are returned unchanged.
func (m *Model) Qualify(name string) string {
	if m.namespace == "" || strings.Contains(name, ".") {
		return name
	}
	return m.namespace + "." + name
}

// Register adds a schema type. Registering the same name twice fails.
func (m *Model) Register(t *SchemaType) error {
	if t == nil {
		return errors.NewValidationError("type", "nil schema type")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.types[t.Name()]; exists {
		return errors.NewAlreadyExistsError("schema type", t.Name())
	}
	m.types[t.Name()] = t
	m.order = append(m.order, t.Name())
	return nil
}

// MustRegister is like Register but panics on error.
func (m *Model) MustRegister(types ...*SchemaType) {
	for _, t := range types {
		if err := m.Register(t); err != nil {
			panic(err)
		}
	}
}

// FindType looks up a type by qualified name, then by the name qualified with the
// model namespace.
func (m *Model) FindType(name string) (*SchemaType, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if t, ok := m.types[name]; ok {
		return t, true
	}
	if q := m.Qualify(name); q != name {
		t, ok := m.types[q]
		return t, ok
	}
	return nil, false
}

// Type is like FindType but reports a miss as an UnknownTypeError.
func (m *Model) Type(name string) (*SchemaType, error) {
	t, ok := m.FindType(name)
	if !ok {
		return nil, errors.NewUnknownTypeError(name)
	}
	return t, nil
}

// Types returns the registered types in registration order.
func (m *Model) Types() []*SchemaType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*SchemaType, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.types[name])
	}
	return out
}

// TypeNames returns the registered type names, sorted.
func (m *Model) TypeNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.types))
	for name := range m.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BindNative associates a Go type with a registered schema type name. Pointer types
// are bound through their element type.
func (m *Model) BindNative(t reflect.Type, typeName string) error {
	t = indirectType(t)
	if t == nil {
		return errors.NewValidationError("type", "nil native type")
	}
	st, ok := m.FindType(typeName)
	if !ok {
		return errors.NewUnknownTypeError(typeName)
	}

	m.mu.Lock()
	m.bindings[t] = st.Name()
	m.mu.Unlock()

	m.native.Delete(t)
	return nil
}

// Bind associates the Go type T with a registered schema type name.
func Bind[T any](m *Model, typeName string) error {
	return m.BindNative(reflect.TypeOf((*T)(nil)).Elem(), typeName)
}

// ResolveNative resolves the schema type governing the Go type t. An explicit binding
// wins; otherwise the Go type name is matched against registered names. Results are
// cached for the lifetime of the model.
func (m *Model) ResolveNative(t reflect.Type) (*SchemaType, bool) {
	t = indirectType(t)
	if t == nil {
		return nil, false
	}

	if cached, ok := m.native.Load(t); ok {
		m.metrics.hit(context.Background(), t)
		return cached.(*SchemaType), true
	}
	m.metrics.miss(context.Background(), t)

	st, ok := m.resolveUncached(t)
	if !ok {
		return nil, false
	}
	actual, _ := m.native.LoadOrStore(t, st)
	return actual.(*SchemaType), true
}

func (m *Model) resolveUncached(t reflect.Type) (*SchemaType, bool) {
	m.mu.RLock()
	name, bound := m.bindings[t]
	m.mu.RUnlock()
	if bound {
		return m.FindType(name)
	}
	if t.Name() == "" {
		return nil, false
	}
	return m.FindType(t.Name())
}

// indirectType strips pointer levels.
func indirectType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

// String returns a short description of the model.
func (m *Model) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fmt.Sprintf("model(namespace=%q, types=%d)", m.namespace, len(m.types))
}
