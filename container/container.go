/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package container holds the property values a projection selected explicitly.
//
// A Container is filled once by whoever evaluated the selection and is read-only
// afterwards. Entries keep their insertion order and remember whether they were
// requested or force-included (auto-selected, e.g. key properties).
package container

import (
	"strings"

	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/mapper"
)

// Entry is a selected property value.
type Entry struct {
	Name         string
	Value        any
	AutoSelected bool
}

// Field is a materialized entry: the output key, the property it came from, and its value.
type Field struct {
	Key      string
	Property string
	Value    any
}

// Container is an ordered set of selected property values.
type Container struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty container.
func New() *Container {
	return &Container{index: make(map[string]int)}
}

// Add records an explicitly requested property. Re-adding a name replaces its value
// and clears the auto-selected mark.
func (c *Container) Add(name string, value any) *Container {
	c.put(Entry{Name: name, Value: value})
	return c
}

// AddAutoSelected records a property included by policy rather than by request. It
// does not demote an entry that was already requested explicitly.
func (c *Container) AddAutoSelected(name string, value any) *Container {
	if i, ok := c.index[name]; ok && !c.entries[i].AutoSelected {
		c.entries[i].Value = value
		return c
	}
	c.put(Entry{Name: name, Value: value, AutoSelected: true})
	return c
}

// AddNested records an explicitly expanded property whose value is another container.
func (c *Container) AddNested(name string, nested *Container) *Container {
	return c.Add(name, nested)
}

func (c *Container) put(e Entry) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[e.Name]; ok {
		c.entries[i] = e
		return
	}
	c.index[e.Name] = len(c.entries)
	c.entries = append(c.entries, e)
}

// Len returns the number of entries.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in insertion order.
func (c *Container) Entries() []Entry {
	if c == nil {
		return nil
	}
	return append([]Entry(nil), c.entries...)
}

// Get returns the value recorded for name.
func (c *Container) Get(name string) (any, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.entries[i].Value, true
}

// IsAutoSelected reports whether name is present and was auto-selected.
func (c *Container) IsAutoSelected(name string) bool {
	if c == nil {
		return false
	}
	i, ok := c.index[name]
	return ok && c.entries[i].AutoSelected
}

// Nested returns the container recorded for an expanded property.
func (c *Container) Nested(name string) (*Container, bool) {
	v, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	nested, ok := v.(*Container)
	return nested, ok && nested != nil
}

// ToDictionary maps every entry through pm into a new map. Auto-selected entries are
// left out unless includeAutoSelected is set. Nested containers are copied as values,
// not mapped recursively.
func (c *Container) ToDictionary(pm mapper.PropertyMapper, includeAutoSelected bool) (map[string]any, error) {
	fields, err := c.ToFields(pm, includeAutoSelected)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out, nil
}

// ToFields is ToDictionary preserving insertion order.
func (c *Container) ToFields(pm mapper.PropertyMapper, includeAutoSelected bool) ([]Field, error) {
	if pm == nil {
		return nil, errors.NewValidationError("mapper", "nil property mapper")
	}
	if c == nil {
		return nil, nil
	}

	fields := make([]Field, 0, len(c.entries))
	for _, e := range c.entries {
		if e.AutoSelected && !includeAutoSelected {
			continue
		}
		key := pm.MapProperty(e.Name)
		if strings.TrimSpace(key) == "" {
			return nil, errors.NewInvalidPropertyMappingError("", e.Name)
		}
		fields = append(fields, Field{Key: key, Property: e.Name, Value: e.Value})
	}
	return fields, nil
}
