/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package model

import (
	"context"
	"fmt"
	"reflect"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// cacheMetrics holds the native-type cache instruments. A nil *cacheMetrics records nothing.
type cacheMetrics struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
}

// WithMeter records native-type cache hits and misses on meter.
func WithMeter(meter metric.Meter) Option {
	return func(m *Model) error {
		if meter == nil {
			return nil
		}

		hits, err := meter.Int64Counter(
			"projector.native_cache.hits",
			metric.WithDescription("Native type lookups served from the schema type cache"),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("create hit counter: %w", err)
		}

		misses, err := meter.Int64Counter(
			"projector.native_cache.misses",
			metric.WithDescription("Native type lookups that had to resolve a schema type"),
			metric.WithUnit("1"),
		)
		if err != nil {
			return fmt.Errorf("create miss counter: %w", err)
		}

		m.metrics = &cacheMetrics{hits: hits, misses: misses}
		return nil
	}
}

func (c *cacheMetrics) hit(ctx context.Context, t reflect.Type) {
	if c == nil {
		return
	}
	c.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("native_type", t.String())))
}

func (c *cacheMetrics) miss(ctx context.Context, t reflect.Type) {
	if c == nil {
		return
	}
	c.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("native_type", t.String())))
}
