/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of the Source interface for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/model"
)

// Call records one Get invocation
type Call struct {
	Type string
	Key  string
}

// Source is an in-memory source.Source keyed by schema type name and key
type Source struct {
	mu       sync.RWMutex
	data     map[string]map[string]any
	getFunc  func(ctx context.Context, typ *model.SchemaType, key string) (any, error)
	getError error
	calls    []Call
}

// New creates a new, empty mock Source
func New() *Source {
	return &Source{
		data: make(map[string]map[string]any),
	}
}

// WithInstance stores an instance under a schema type name and key
func (m *Source) WithInstance(typeName, key string, instance any) *Source {
	m.Put(typeName, key, instance)
	return m
}

// WithGetFunc replaces the lookup with a custom function
func (m *Source) WithGetFunc(f func(ctx context.Context, typ *model.SchemaType, key string) (any, error)) *Source {
	m.getFunc = f
	return m
}

// WithGetError makes Get operations return an error
func (m *Source) WithGetError(err error) *Source {
	m.getError = err
	return m
}

// Put stores an instance
func (m *Source) Put(typeName, key string, instance any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byKey, ok := m.data[typeName]
	if !ok {
		byKey = make(map[string]any)
		m.data[typeName] = byKey
	}
	byKey[key] = instance
}

// Get retrieves an instance by schema type and key
func (m *Source) Get(ctx context.Context, typ *model.SchemaType, key string) (any, error) {
	if typ == nil {
		return nil, errors.NewValidationError("type", "nil schema type")
	}

	m.mu.Lock()
	m.calls = append(m.calls, Call{Type: typ.Name(), Key: key})
	m.mu.Unlock()

	if m.getError != nil {
		return nil, m.getError
	}
	if m.getFunc != nil {
		return m.getFunc(ctx, typ, key)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if instance, exists := m.data[typ.Name()][key]; exists {
		return instance, nil
	}
	return nil, errors.NewNotFoundError(typ.Name(), key)
}

// Calls returns a copy of the recorded Get invocations
func (m *Source) Calls() []Call {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Call(nil), m.calls...)
}

// Count returns the number of stored instances
func (m *Source) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, byKey := range m.data {
		n += len(byKey)
	}
	return n
}

// Clear removes all data and recorded calls
func (m *Source) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make(map[string]map[string]any)
	m.calls = nil
}
