/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/projector/errors"
)

// TagName is the struct tag consulted for projector options, e.g. `projector:"key"`.
const TagName = "projector"

var formatTypes = map[reflect.Type]string{
	reflect.TypeOf(time.Time{}):           "date-time",
	reflect.TypeOf(strfmt.DateTime{}):     "date-time",
	reflect.TypeOf(strfmt.Date{}):         "date",
	reflect.TypeOf(strfmt.UUID("")):       "uuid",
	reflect.TypeOf(strfmt.Email("")):      "email",
	reflect.TypeOf(strfmt.URI("")):        "uri",
	reflect.TypeOf(strfmt.Duration(0)):    "duration",
	reflect.TypeOf(strfmt.ObjectId{}):     "bsonobjectid",
	reflect.TypeOf(strfmt.Base64(nil)):    "byte",
	reflect.TypeOf(strfmt.Password("")):   "password",
	reflect.TypeOf(strfmt.Hostname("")):   "hostname",
	reflect.TypeOf(strfmt.IPv4("")):       "ipv4",
	reflect.TypeOf(strfmt.IPv6("")):       "ipv6",
	reflect.TypeOf(strfmt.MAC("")):        "mac",
	reflect.TypeOf(strfmt.ULID{}):         "ulid",
	reflect.TypeOf(strfmt.CreditCard("")): "creditcard",
}

// PropertyName returns the property name a struct field is exposed under: the json tag
// name when present, otherwise the field name. Unexported fields and fields tagged
// `json:"-"` are not exposed.
func PropertyName(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

// FieldProperty is a struct field exposed as a property.
type FieldProperty struct {
	Name  string
	Field reflect.StructField
}

// StructProperties lists the properties a struct type exposes, in declaration order:
// its exported fields plus those promoted from embedded structs. An embedded struct is
// flattened, never exposed as a property of its own. The first field claiming a
// property name wins.
func StructProperties(t reflect.Type) []FieldProperty {
	t = indirectType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	var out []FieldProperty
	seen := make(map[string]bool)
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous && indirectType(f.Type).Kind() == reflect.Struct {
			continue
		}
		name, ok := PropertyName(f)
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, FieldProperty{Name: name, Field: f})
	}
	return out
}

// FromStruct derives a schema type from the properties of a Go struct type (see
// StructProperties).
// Nested struct types are referenced by their Go type name. Fields tagged
// `projector:"key"` become key properties, which makes the type an entity.
func FromStruct(t reflect.Type, name string, kind TypeKind) (*SchemaType, error) {
	return fromStruct(t, name, kind, func(s string) string { return s })
}

// RegisterStruct derives a schema type from T, registers it under T's name qualified
// with the model namespace, and binds T to it.
func RegisterStruct[T any](m *Model, kind TypeKind) (*SchemaType, error) {
	t := indirectType(reflect.TypeOf((*T)(nil)).Elem())
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.NewValidationError("type", "RegisterStruct requires a struct type")
	}

	st, err := fromStruct(t, m.Qualify(t.Name()), kind, m.Qualify)
	if err != nil {
		return nil, err
	}
	if err := m.Register(st); err != nil {
		return nil, err
	}
	if err := m.BindNative(t, st.Name()); err != nil {
		return nil, err
	}
	return st, nil
}

func fromStruct(t reflect.Type, name string, kind TypeKind, qualify func(string) string) (*SchemaType, error) {
	t = indirectType(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil, errors.NewValidationError(name, "not a struct type")
	}

	var (
		props []StructuralProperty
		key   []string
	)
	for _, fp := range StructProperties(t) {
		props = append(props, StructuralProperty{
			Name: fp.Name,
			Type: declaredType(fp.Field.Type, qualify),
		})
		if hasTagOption(fp.Field.Tag.Get(TagName), "key") {
			key = append(key, fp.Name)
		}
	}

	if len(key) > 0 {
		kind = KindEntity
	}
	return NewSchemaType(name, kind, props, WithKey(key...))
}

// declaredType maps a Go type to the declared type vocabulary of model documents.
func declaredType(t reflect.Type, qualify func(string) string) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := formatTypes[t]; ok {
		return f
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "bool"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "int"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return "byte"
		}
		return "[]" + declaredType(t.Elem(), qualify)
	case reflect.Struct:
		if t.Name() == "" {
			return "any"
		}
		return qualify(t.Name())
	default:
		return "any"
	}
}

func hasTagOption(tag, option string) bool {
	for _, part := range strings.Split(tag, ",") {
		if strings.TrimSpace(part) == option {
			return true
		}
	}
	return false
}
