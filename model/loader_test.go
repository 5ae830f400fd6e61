/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/projector/errors"
)

const shopYAML = `
namespace: Shop
types:
  - name: Address
    properties:
      - name: City
        type: string
      - name: Zip
  - name: Customer
    key: [ID]
    keyTemplate:
      PK: "CUSTOMER#{ID}"
      SK: "PROFILE"
    properties:
      - name: ID
        type: uuid
      - name: Name
        type: string
      - name: Home
        type: Address
      - name: Previous
        type: "[]Address"
      - name: Joined
        type: date-time
`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(shopYAML))
	require.NoError(t, err)

	assert.Equal(t, "Shop", m.Namespace())
	assert.Equal(t, []string{"Shop.Address", "Shop.Customer"}, m.TypeNames())

	addr, ok := m.FindType("Address")
	require.True(t, ok)
	assert.True(t, addr.IsComplex())
	zip, _ := addr.Property("Zip")
	assert.Equal(t, "any", zip.Type)

	customer, ok := m.FindType("Shop.Customer")
	require.True(t, ok)
	assert.True(t, customer.IsEntity(), "a key implies an entity")
	assert.Equal(t, []string{"ID"}, customer.Key())
	assert.Equal(t, map[string]string{"PK": "CUSTOMER#{ID}", "SK": "PROFILE"}, customer.KeyTemplate())

	home, _ := customer.Property("Home")
	assert.Equal(t, "Shop.Address", home.Type)
	previous, _ := customer.Property("Previous")
	assert.Equal(t, "[]Shop.Address", previous.Type)
	joined, _ := customer.Property("Joined")
	assert.Equal(t, "date-time", joined.Type)
}

func TestParseNamespaceOverride(t *testing.T) {
	m, err := Parse([]byte(shopYAML), WithNamespace("Store"))
	require.NoError(t, err)
	_, ok := m.FindType("Store.Customer")
	assert.True(t, ok)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{
			name:  "UnknownKind",
			yaml:  "types:\n  - name: A\n    kind: table\n    properties: []\n",
			field: "types[0].kind",
		},
		{
			name:  "UnknownDeclaredType",
			yaml:  "types:\n  - name: A\n    properties:\n      - name: B\n        type: Missing\n",
			field: "types[0].properties[0].type",
		},
		{
			name:  "UnknownElementType",
			yaml:  "types:\n  - name: A\n    properties:\n      - name: B\n        type: \"[]Missing\"\n",
			field: "types[0].properties[0].type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.True(t, errors.IsValidationError(err), "got %v", err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	t.Run("KeyNotDeclared", func(t *testing.T) {
		_, err := Parse([]byte("types:\n  - name: A\n    key: [ID]\n    properties:\n      - name: B\n"))
		require.True(t, errors.IsValidationError(err))
		assert.Contains(t, err.Error(), "types[0]")
	})

	t.Run("DuplicateType", func(t *testing.T) {
		_, err := Parse([]byte("types:\n  - name: A\n    properties: []\n  - name: A\n    properties: []\n"))
		assert.True(t, errors.IsAlreadyExists(err))
	})

	t.Run("MalformedYAML", func(t *testing.T) {
		_, err := Parse([]byte("types: [\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse model YAML")
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(shopYAML), 0o600))

	m, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, m.Types(), 2)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestMarshalRoundTrip(t *testing.T) {
	m, err := Parse([]byte(shopYAML))
	require.NoError(t, err)

	data, err := Marshal(m)
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, m.Document(), again.Document())
	assert.Equal(t, "Customer", again.Document().Types[1].Name)
}
