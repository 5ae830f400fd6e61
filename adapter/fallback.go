/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package adapter

import (
	"github.com/suparena/projector/model"
)

// ComplexAdapter reads the declared properties of a complex-typed source instance.
type ComplexAdapter struct {
	instance any
	typ      *model.SchemaType
	read     ReaderFunc
}

// NewComplexAdapter wraps instance as a value of the complex type t. A nil read
// uses ReadProperty.
func NewComplexAdapter(instance any, t *model.SchemaType, read ReaderFunc) *ComplexAdapter {
	if read == nil {
		read = ReadProperty
	}
	return &ComplexAdapter{instance: instance, typ: t, read: read}
}

// Type returns the schema type the instance is read as.
func (a *ComplexAdapter) Type() *model.SchemaType {
	return a.typ
}

// TryGetProperty reads a declared property off the instance.
func (a *ComplexAdapter) TryGetProperty(name string) (any, bool) {
	return tryGet(a.instance, a.typ, a.read, name)
}

// EntityAdapter reads the declared properties of an entity-typed source instance and
// exposes its key.
type EntityAdapter struct {
	instance any
	typ      *model.SchemaType
	read     ReaderFunc
}

// NewEntityAdapter wraps instance as a value of the entity type t. A nil read uses
// ReadProperty.
func NewEntityAdapter(instance any, t *model.SchemaType, read ReaderFunc) *EntityAdapter {
	if read == nil {
		read = ReadProperty
	}
	return &EntityAdapter{instance: instance, typ: t, read: read}
}

// Type returns the schema type the instance is read as.
func (a *EntityAdapter) Type() *model.SchemaType {
	return a.typ
}

// TryGetProperty reads a declared property off the instance.
func (a *EntityAdapter) TryGetProperty(name string) (any, bool) {
	return tryGet(a.instance, a.typ, a.read, name)
}

// Key returns the key property values. It reports false when the type declares no
// key or a key property cannot be read.
func (a *EntityAdapter) Key() (map[string]any, bool) {
	names := a.typ.Key()
	if len(names) == 0 {
		return nil, false
	}
	key := make(map[string]any, len(names))
	for _, name := range names {
		v, ok := a.TryGetProperty(name)
		if !ok {
			return nil, false
		}
		key[name] = v
	}
	return key, true
}

func tryGet(instance any, t *model.SchemaType, read ReaderFunc, name string) (any, bool) {
	if instance == nil || t == nil || !t.HasProperty(name) {
		return nil, false
	}
	return read(instance, name)
}

// Fallback is the adapter a projection falls back to: exactly one of its variants is
// set, chosen from the kind of the resolved schema type. The zero Fallback finds nothing.
type Fallback struct {
	entity  *EntityAdapter
	complex *ComplexAdapter
}

// NewFallback builds the Complex variant for complex types and the Entity variant for
// everything else.
func NewFallback(instance any, t *model.SchemaType, read ReaderFunc) Fallback {
	if t == nil {
		return Fallback{}
	}
	if t.IsComplex() {
		return Fallback{complex: NewComplexAdapter(instance, t, read)}
	}
	return Fallback{entity: NewEntityAdapter(instance, t, read)}
}

// TryGetProperty delegates to the selected variant.
func (f Fallback) TryGetProperty(name string) (any, bool) {
	switch {
	case f.complex != nil:
		return f.complex.TryGetProperty(name)
	case f.entity != nil:
		return f.entity.TryGetProperty(name)
	default:
		return nil, false
	}
}

// Entity returns the Entity variant, if selected.
func (f Fallback) Entity() (*EntityAdapter, bool) {
	return f.entity, f.entity != nil
}

// Complex returns the Complex variant, if selected.
func (f Fallback) Complex() (*ComplexAdapter, bool) {
	return f.complex, f.complex != nil
}

// IsZero reports whether no variant is selected.
func (f Fallback) IsZero() bool {
	return f.entity == nil && f.complex == nil
}
