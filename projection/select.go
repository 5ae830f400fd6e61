/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package projection

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/suparena/projector/adapter"
	"github.com/suparena/projector/container"
	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/model"
)

// PathSeparator separates the segments of an expanded property path ("Home/City").
const PathSeparator = "/"

// Select builds the container for an already-resolved selection: every named
// property is read off instance as an explicit entry, and the key properties of an
// entity type are added as auto-selected entries. A path such as "Home/City" expands
// Home into a nested container holding City.
//
// typeName may be empty, in which case the dynamic type of instance is resolved
// natively. Naming a property the type does not declare is a ValidationError.
func Select(lookup model.Lookup, typeName string, instance any, paths ...string) (*container.Container, error) {
	st, err := resolve(lookup, typeName, instance)
	if err != nil {
		return nil, err
	}
	return selectInto(lookup, st, instance, paths)
}

func resolve(lookup model.Lookup, typeName string, instance any) (*model.SchemaType, error) {
	if lookup == nil {
		return nil, errors.NewValidationError("model", "nil model")
	}
	if typeName != "" {
		st, ok := lookup.FindType(typeName)
		if !ok {
			return nil, errors.NewUnknownTypeError(typeName)
		}
		return st, nil
	}
	if instance == nil {
		return nil, errors.NewUnknownTypeError("<untyped>")
	}
	t := reflect.TypeOf(instance)
	st, ok := lookup.ResolveNative(t)
	if !ok {
		return nil, errors.NewUnknownTypeError(t.String())
	}
	return st, nil
}

func selectInto(lookup model.Lookup, st *model.SchemaType, instance any, paths []string) (*container.Container, error) {
	fb := adapter.NewFallback(instance, st, nil)
	c := container.New()

	// nested paths grouped by their head segment, in first-seen order
	var heads []string
	nested := make(map[string][]string)

	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		head, rest, isPath := strings.Cut(path, PathSeparator)
		if !st.HasProperty(head) {
			return nil, errors.NewValidationError(path,
				fmt.Sprintf("%s declares no property %q", st.Name(), head))
		}
		if !isPath {
			if v, ok := fb.TryGetProperty(head); ok {
				c.Add(head, v)
			}
			continue
		}
		if _, seen := nested[head]; !seen {
			heads = append(heads, head)
		}
		nested[head] = append(nested[head], rest)
	}

	for _, head := range heads {
		prop, _ := st.Property(head)
		if prop.IsCollection() {
			return nil, errors.NewValidationError(head, "cannot expand into a collection property")
		}
		nestedType, ok := lookup.FindType(prop.Type)
		if !ok {
			return nil, errors.NewValidationError(head,
				fmt.Sprintf("declared type %q is not a structured type", prop.Type))
		}
		v, ok := fb.TryGetProperty(head)
		if !ok || isNil(v) {
			continue
		}
		sub, err := selectInto(lookup, nestedType, v, nested[head])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", head, err)
		}
		c.AddNested(head, sub)
	}

	if entity, ok := fb.Entity(); ok {
		if key, ok := entity.Key(); ok {
			for _, name := range st.Key() {
				if _, present := c.Get(name); !present {
					c.AddAutoSelected(name, key[name])
				}
			}
		}
	}

	return c, nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
