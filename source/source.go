/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package source

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/model"
)

// Source fetches the stored instance of a schema type by key. The returned instance is
// anything the adapter package can read: a struct, a map, or a raw DynamoDB item.
type Source interface {
	Get(ctx context.Context, typ *model.SchemaType, key string) (any, error)
}

// Func adapts a function to the Source interface.
type Func func(ctx context.Context, typ *model.SchemaType, key string) (any, error)

// Get calls f.
func (f Func) Get(ctx context.Context, typ *model.SchemaType, key string) (any, error) {
	return f(ctx, typ, key)
}

// Router is a Source that dispatches by schema type name. Types without a registered
// source go to the default source, if any.
type Router struct {
	mu       sync.RWMutex
	sources  map[string]Source
	fallback Source
}

// NewRouter creates a router. def may be nil.
func NewRouter(def Source) *Router {
	return &Router{
		sources:  make(map[string]Source),
		fallback: def,
	}
}

// Register routes a schema type name to src.
func (r *Router) Register(typeName string, src Source) error {
	if src == nil {
		return errors.NewValidationError("source", "nil source")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[typeName]; exists {
		return errors.NewAlreadyExistsError("source", typeName)
	}
	r.sources[typeName] = src
	return nil
}

// Lookup returns the source serving a schema type name.
func (r *Router) Lookup(typeName string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if src, ok := r.sources[typeName]; ok {
		return src, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("no source for type %q: %w", typeName, errors.ErrNotFound)
}

// Names returns the explicitly routed type names, sorted.
func (r *Router) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get fetches through the source routed for typ.
func (r *Router) Get(ctx context.Context, typ *model.SchemaType, key string) (any, error) {
	if typ == nil {
		return nil, errors.NewValidationError("type", "nil schema type")
	}
	src, err := r.Lookup(typ.Name())
	if err != nil {
		return nil, err
	}
	return src.Get(ctx, typ, key)
}
