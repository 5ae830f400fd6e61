/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"strings"

	"github.com/suparena/projector/errors"
)

// TypeKind distinguishes entity types from complex types.
type TypeKind int

const (
	// KindComplex is a pure value aggregate.
	KindComplex TypeKind = iota
	// KindEntity carries identity/key semantics.
	KindEntity
)

// String returns the lower-case kind name used in model documents.
func (k TypeKind) String() string {
	switch k {
	case KindEntity:
		return "entity"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// ParseKind converts a model document kind into a TypeKind. An empty string is complex.
func ParseKind(s string) (TypeKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "complex":
		return KindComplex, true
	case "entity":
		return KindEntity, true
	default:
		return KindComplex, false
	}
}

// StructuralProperty is a declared property of a schema type.
type StructuralProperty struct {
	Name string // Property name as declared on the schema type
	Type string // Declared type, e.g. "string", "date-time", "[]Demo.Address"
}

// IsCollection reports whether the declared type is a collection ("[]T").
func (p StructuralProperty) IsCollection() bool {
	return strings.HasPrefix(p.Type, "[]")
}

// ElementType returns the declared element type of a collection, or the type itself.
func (p StructuralProperty) ElementType() string {
	return strings.TrimPrefix(p.Type, "[]")
}

// SchemaType describes a structured type of the model. It is immutable once built;
// accessors return copies of its slices and maps.
type SchemaType struct {
	name        string
	kind        TypeKind
	properties  []StructuralProperty
	index       map[string]int
	key         []string
	keyTemplate map[string]string
}

// TypeOption configures optional parts of a SchemaType.
type TypeOption func(*SchemaType)

// WithKey sets the ordered key property names of an entity type.
func WithKey(names ...string) TypeOption {
	return func(t *SchemaType) {
		t.key = append([]string(nil), names...)
	}
}

// WithKeyTemplate sets the storage key macros (e.g. "PK": "PERSON#{ID}").
func WithKeyTemplate(template map[string]string) TypeOption {
	return func(t *SchemaType) {
		t.keyTemplate = make(map[string]string, len(template))
		for k, v := range template {
			t.keyTemplate[k] = v
		}
	}
}

// NewSchemaType builds a schema type. Property names must be unique and non-blank, and
// every key name must refer to a declared property.
func NewSchemaType(name string, kind TypeKind, properties []StructuralProperty, opts ...TypeOption) (*SchemaType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidationError("name", "schema type name is required")
	}

	t := &SchemaType{
		name:       name,
		kind:       kind,
		properties: make([]StructuralProperty, 0, len(properties)),
		index:      make(map[string]int, len(properties)),
	}

	for _, p := range properties {
		if strings.TrimSpace(p.Name) == "" {
			return nil, errors.NewValidationError(name, "property name is required")
		}
		if _, dup := t.index[p.Name]; dup {
			return nil, errors.NewValidationError(name+"."+p.Name, "duplicate property")
		}
		t.index[p.Name] = len(t.properties)
		t.properties = append(t.properties, p)
	}

	for _, opt := range opts {
		opt(t)
	}

	for _, k := range t.key {
		if _, ok := t.index[k]; !ok {
			return nil, errors.NewValidationError(name+"."+k, "key property is not declared")
		}
	}
	if len(t.key) > 0 && kind != KindEntity {
		return nil, errors.NewValidationError(name, "only entity types may declare a key")
	}

	return t, nil
}

// MustSchemaType is like NewSchemaType but panics on error. It is intended for
// package-level model declarations and tests.
func MustSchemaType(name string, kind TypeKind, properties []StructuralProperty, opts ...TypeOption) *SchemaType {
	t, err := NewSchemaType(name, kind, properties, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the qualified type name.
func (t *SchemaType) Name() string {
	return t.name
}

// ShortName returns the last dot-separated segment of the name.
func (t *SchemaType) ShortName() string {
	if i := strings.LastIndex(t.name, "."); i >= 0 {
		return t.name[i+1:]
	}
	return t.name
}

// Kind returns the type kind.
func (t *SchemaType) Kind() TypeKind {
	return t.kind
}

// IsEntity reports whether this is an entity type.
func (t *SchemaType) IsEntity() bool {
	return t.kind == KindEntity
}

// IsComplex reports whether this is a complex type.
func (t *SchemaType) IsComplex() bool {
	return t.kind == KindComplex
}

// Properties returns the structural properties in declaration order.
func (t *SchemaType) Properties() []StructuralProperty {
	return append([]StructuralProperty(nil), t.properties...)
}

// PropertyNames returns the structural property names in declaration order.
func (t *SchemaType) PropertyNames() []string {
	names := make([]string, len(t.properties))
	for i, p := range t.properties {
		names[i] = p.Name
	}
	return names
}

// Property looks up a structural property by name.
func (t *SchemaType) Property(name string) (StructuralProperty, bool) {
	i, ok := t.index[name]
	if !ok {
		return StructuralProperty{}, false
	}
	return t.properties[i], true
}

// HasProperty reports whether name is a declared structural property.
func (t *SchemaType) HasProperty(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Key returns the ordered key property names. Complex types have none.
func (t *SchemaType) Key() []string {
	return append([]string(nil), t.key...)
}

// IsKey reports whether name is one of the key properties.
func (t *SchemaType) IsKey(name string) bool {
	for _, k := range t.key {
		if k == name {
			return true
		}
	}
	return false
}

// KeyTemplate returns a copy of the storage key macros, or nil if none were declared.
func (t *SchemaType) KeyTemplate() map[string]string {
	if t.keyTemplate == nil {
		return nil
	}
	out := make(map[string]string, len(t.keyTemplate))
	for k, v := range t.keyTemplate {
		out[k] = v
	}
	return out
}

// String returns the qualified type name.
func (t *SchemaType) String() string {
	return t.name
}
