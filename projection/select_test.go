/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package projection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/projector/container"
	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/mapper"
	"github.com/suparena/projector/model"
	"github.com/suparena/projector/projection"
)

type Customer struct {
	ID      string   `json:"id" projector:"key"`
	Name    string   `json:"name"`
	Home    *Address `json:"home"`
	Work    *Address `json:"work"`
	Tags    []string `json:"tags"`
	private string
}

func newCustomerModel(t *testing.T) *model.Model {
	t.Helper()

	m, err := model.New(model.WithNamespace("Shop"))
	require.NoError(t, err)

	_, err = model.RegisterStruct[Address](m, model.KindComplex)
	require.NoError(t, err)
	_, err = model.RegisterStruct[Customer](m, model.KindComplex)
	require.NoError(t, err)
	return m
}

func sampleCustomer() *Customer {
	return &Customer{
		ID:   "c-7",
		Name: "Ada",
		Home: &Address{City: "London", Zip: "N1"},
		Tags: []string{"vip"},
	}
}

func TestSelect(t *testing.T) {
	m := newCustomerModel(t)

	t.Run("KeysAreAutoSelected", func(t *testing.T) {
		c, err := projection.Select(m, "", sampleCustomer(), "name")
		require.NoError(t, err)

		assert.Equal(t, []container.Entry{
			{Name: "name", Value: "Ada"},
			{Name: "id", Value: "c-7", AutoSelected: true},
		}, c.Entries())
	})

	t.Run("ExplicitKeyStaysExplicit", func(t *testing.T) {
		c, err := projection.Select(m, "Shop.Customer", sampleCustomer(), "id", "name")
		require.NoError(t, err)
		assert.False(t, c.IsAutoSelected("id"))
		assert.Equal(t, 2, c.Len())
	})

	t.Run("NestedPaths", func(t *testing.T) {
		c, err := projection.Select(m, "", sampleCustomer(), "home/City", "home/Zip", "work/City")
		require.NoError(t, err)

		home, ok := c.Nested("home")
		require.True(t, ok)
		assert.Equal(t, []container.Entry{
			{Name: "City", Value: "London"},
			{Name: "Zip", Value: "N1"},
		}, home.Entries())

		_, ok = c.Get("work")
		assert.False(t, ok, "nil nested values are skipped")
	})

	t.Run("UndeclaredProperty", func(t *testing.T) {
		_, err := projection.Select(m, "", sampleCustomer(), "private")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("UndeclaredNestedProperty", func(t *testing.T) {
		_, err := projection.Select(m, "", sampleCustomer(), "home/Street")
		require.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "home: ")
	})

	t.Run("CollectionExpansion", func(t *testing.T) {
		_, err := projection.Select(m, "", sampleCustomer(), "tags/x")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("PrimitiveExpansion", func(t *testing.T) {
		_, err := projection.Select(m, "", sampleCustomer(), "name/first")
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("UnknownType", func(t *testing.T) {
		_, err := projection.Select(m, "Shop.Order", sampleCustomer(), "name")
		assert.True(t, errors.IsUnknownType(err))

		_, err = projection.Select(m, "", struct{}{}, "name")
		assert.True(t, errors.IsUnknownType(err))
	})

	t.Run("NilModel", func(t *testing.T) {
		_, err := projection.Select(nil, "Shop.Customer", sampleCustomer())
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestSelectThenProject(t *testing.T) {
	m := newCustomerModel(t)
	customer := sampleCustomer()

	c, err := projection.Select(m, "", customer, "name")
	require.NoError(t, err)

	w := projection.New[*Customer](m, projection.WithContainer(c))
	out, err := w.ToMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ada"}, out, "auto-selected key is not requested")

	key, ok := w.Key()
	require.True(t, ok)
	assert.Equal(t, map[string]any{"id": "c-7"}, key)
}

func TestMaterialize(t *testing.T) {
	m := newCustomerModel(t)
	customer := sampleCustomer()

	c, err := projection.Select(m, "", customer, "name", "home/City")
	require.NoError(t, err)

	t.Run("NestedContainers", func(t *testing.T) {
		w := projection.New[*Customer](m, projection.WithContainer(c))
		out, err := projection.Materialize(w, mapper.Constant(mapper.CamelCase))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"name": "Ada",
			"home": map[string]any{"city": "London"},
		}, out)
	})

	t.Run("ToMapKeepsContainers", func(t *testing.T) {
		w := projection.New[*Customer](m, projection.WithContainer(c))
		out, err := w.ToMap()
		require.NoError(t, err)
		assert.IsType(t, &container.Container{}, out["home"])
	})

	t.Run("NestedMappingErrorNamesProperty", func(t *testing.T) {
		blankCity := mapper.Func(func(name string) string {
			if name == "City" {
				return ""
			}
			return name
		})
		w := projection.New[*Customer](m, projection.WithContainer(c))
		_, err := projection.Materialize(w, mapper.Constant(blankCity))
		require.True(t, errors.IsInvalidPropertyMapping(err))
		assert.Contains(t, err.Error(), "home: ")
	})
}
