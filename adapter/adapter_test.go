/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package adapter

import (
	"reflect"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/projector/model"
)

type audit struct {
	CreatedBy string
}

type Person struct {
	audit
	ID       string  `json:"id"`
	Name     string
	Age      int     `json:"age,omitempty"`
	Nickname *string `json:"nickname"`
	Secret   string  `json:"-"`
	internal string
}

var (
	personType = model.MustSchemaType("Demo.Person", model.KindEntity,
		[]model.StructuralProperty{
			{Name: "id", Type: "string"},
			{Name: "Name", Type: "string"},
			{Name: "age", Type: "int"},
			{Name: "nickname", Type: "string"},
		},
		model.WithKey("id"),
	)
	addressType = model.MustSchemaType("Demo.Address", model.KindComplex,
		[]model.StructuralProperty{
			{Name: "City", Type: "string"},
			{Name: "Zip", Type: "string"},
		},
	)
)

func TestReadProperty(t *testing.T) {
	p := &Person{audit: audit{CreatedBy: "ops"}, ID: "p-1", Name: "Ada", Age: 37, Secret: "s", internal: "i"}

	tests := []struct {
		name     string
		instance any
		property string
		want     any
		found    bool
	}{
		{"json tag", p, "id", "p-1", true},
		{"field name when tagged", p, "ID", "p-1", true},
		{"untagged field", p, "Name", "Ada", true},
		{"omitempty tag", p, "age", 37, true},
		{"nil pointer is present", p, "nickname", (*string)(nil), true},
		{"promoted field", p, "CreatedBy", "ops", true},
		{"json dash skipped", p, "Secret", nil, false},
		{"unexported skipped", p, "internal", nil, false},
		{"missing", p, "Email", nil, false},
		{"struct value", *p, "Name", "Ada", true},
		{"map any", map[string]any{"Name": "Bob"}, "Name", "Bob", true},
		{"map missing", map[string]any{"Name": "Bob"}, "Age", nil, false},
		{"typed map", map[string]int{"Age": 12}, "Age", 12, true},
		{"int keyed map", map[int]string{1: "x"}, "1", nil, false},
		{"nil instance", nil, "Name", nil, false},
		{"nil pointer instance", (*Person)(nil), "Name", nil, false},
		{"scalar instance", 42, "Name", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ReadProperty(tt.instance, tt.property)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestReadPropertyDynamoDBItem(t *testing.T) {
	item := map[string]types.AttributeValue{
		"Name":  &types.AttributeValueMemberS{Value: "Ada"},
		"Age":   &types.AttributeValueMemberN{Value: "37"},
		"Admin": &types.AttributeValueMemberBOOL{Value: true},
		"Tags": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberS{Value: "math"},
		}},
		"Nick": &types.AttributeValueMemberNULL{Value: true},
	}

	v, ok := ReadProperty(item, "Name")
	require.True(t, ok)
	assert.Equal(t, "Ada", v)

	v, ok = ReadProperty(item, "Age")
	require.True(t, ok)
	assert.Equal(t, float64(37), v)

	v, ok = ReadProperty(item, "Admin")
	require.True(t, ok)
	assert.Equal(t, true, v)

	v, ok = ReadProperty(item, "Tags")
	require.True(t, ok)
	assert.Equal(t, []any{"math"}, v)

	v, ok = ReadProperty(item, "Nick")
	require.True(t, ok)
	assert.Nil(t, v)

	_, ok = ReadProperty(item, "Missing")
	assert.False(t, ok)

	t.Run("UndecodableAttributeIsReturnedRaw", func(t *testing.T) {
		bad := &types.AttributeValueMemberN{Value: "not-a-number"}
		v, ok := ReadProperty(map[string]types.AttributeValue{"Score": bad}, "Score")
		require.True(t, ok)
		assert.Same(t, bad, v)
	})
}

func TestNewFallback(t *testing.T) {
	t.Run("EntityVariant", func(t *testing.T) {
		fb := NewFallback(&Person{ID: "p-1", Name: "Ada"}, personType, nil)

		entity, ok := fb.Entity()
		require.True(t, ok)
		assert.Same(t, personType, entity.Type())
		_, ok = fb.Complex()
		assert.False(t, ok)

		v, ok := fb.TryGetProperty("Name")
		require.True(t, ok)
		assert.Equal(t, "Ada", v)

		key, ok := entity.Key()
		require.True(t, ok)
		assert.Equal(t, map[string]any{"id": "p-1"}, key)
	})

	t.Run("ComplexVariant", func(t *testing.T) {
		fb := NewFallback(map[string]any{"City": "London"}, addressType, nil)

		complexAdapter, ok := fb.Complex()
		require.True(t, ok)
		assert.Same(t, addressType, complexAdapter.Type())
		_, ok = fb.Entity()
		assert.False(t, ok)

		v, ok := fb.TryGetProperty("City")
		require.True(t, ok)
		assert.Equal(t, "London", v)

		_, ok = fb.TryGetProperty("Zip")
		assert.False(t, ok, "declared but absent on the instance")
	})

	t.Run("UndeclaredPropertyIgnored", func(t *testing.T) {
		fb := NewFallback(map[string]any{"City": "London", "Country": "UK"}, addressType, nil)
		_, ok := fb.TryGetProperty("Country")
		assert.False(t, ok)
	})

	t.Run("NilType", func(t *testing.T) {
		fb := NewFallback(&Person{}, nil, nil)
		assert.True(t, fb.IsZero())
		_, ok := fb.TryGetProperty("Name")
		assert.False(t, ok)
	})

	t.Run("CustomReader", func(t *testing.T) {
		calls := 0
		read := func(instance any, name string) (any, bool) {
			calls++
			return "stub-" + name, true
		}
		fb := NewFallback(struct{}{}, addressType, read)
		v, ok := fb.TryGetProperty("City")
		require.True(t, ok)
		assert.Equal(t, "stub-City", v)
		assert.Equal(t, 1, calls)
	})
}

type record struct {
	Key     string `json:"key" projector:"key"`
	Version int    `json:"version"`
}

type Invoice struct {
	*record
	Total float64 `json:"total"`
}

func TestEmbeddedKey(t *testing.T) {
	typ, err := model.FromStruct(reflect.TypeOf(Invoice{}), "Billing.Invoice", model.KindComplex)
	require.NoError(t, err)
	require.Equal(t, []string{"key", "version", "total"}, typ.PropertyNames())
	require.Equal(t, []string{"key"}, typ.Key())

	inv := &Invoice{record: &record{Key: "inv-9", Version: 2}, Total: 12.5}
	entity, ok := NewFallback(inv, typ, nil).Entity()
	require.True(t, ok)

	key, ok := entity.Key()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"key": "inv-9"}, key)

	v, ok := entity.TryGetProperty("version")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = ReadProperty(&Invoice{Total: 1}, "key")
	assert.False(t, ok, "nil embedded pointer")
}

func TestEntityAdapterKey(t *testing.T) {
	noKey := model.MustSchemaType("Demo.Event", model.KindEntity,
		[]model.StructuralProperty{{Name: "Name", Type: "string"}})
	_, ok := NewEntityAdapter(map[string]any{"Name": "x"}, noKey, nil).Key()
	assert.False(t, ok, "no declared key")

	_, ok = NewEntityAdapter(map[string]any{"Name": "x"}, personType, nil).Key()
	assert.False(t, ok, "key property missing on the instance")
}
