/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package projector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/mapper"
	"github.com/suparena/projector/model"
	"github.com/suparena/projector/projection"
	"github.com/suparena/projector/source"
)

// Projector fetches stored instances and projects them through the model.
type Projector struct {
	model    *model.Model
	source   source.Source
	provider mapper.Provider
	fallback bool
	logger   *slog.Logger
}

// Option configures a Projector.
type Option func(*Projector)

// WithMapperProvider sets the naming policy used for output keys. The default is the
// identity mapper.
func WithMapperProvider(provider mapper.Provider) Option {
	return func(p *Projector) {
		p.provider = provider
	}
}

// WithFallback makes selective projections fill in every declared property the
// selection did not name from the fetched instance.
func WithFallback(enabled bool) Option {
	return func(p *Projector) {
		p.fallback = enabled
	}
}

// WithLogger sets the logger. A nil logger means slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Projector) {
		p.logger = logger
	}
}

// New creates a projector over m. src may be nil when only ProjectInstance is used.
func New(m *model.Model, src source.Source, opts ...Option) (*Projector, error) {
	if m == nil {
		return nil, errors.NewValidationError("model", "model is required")
	}

	p := &Projector{
		model:    m,
		source:   src,
		provider: mapper.DefaultProvider,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	if p.provider == nil {
		return nil, errors.ErrNullMapperProvider
	}
	return p, nil
}

// Model returns the model the projector resolves types through.
func (p *Projector) Model() *model.Model {
	return p.model
}

// Fetch loads the instance of typeName stored under key.
func (p *Projector) Fetch(ctx context.Context, typeName, key string) (any, *model.SchemaType, error) {
	st, err := p.model.Type(typeName)
	if err != nil {
		return nil, nil, err
	}
	if p.source == nil {
		return nil, nil, errors.NewValidationError("source", "projector has no source")
	}

	instance, err := p.source.Get(ctx, st, key)
	if err != nil {
		p.logger.Warn("fetch failed", "type", st.Name(), "key", key, "error", err)
		return nil, nil, fmt.Errorf("fetch %s %q: %w", st.Name(), key, err)
	}
	p.logger.Debug("fetched instance", "type", st.Name(), "key", key)
	return instance, st, nil
}

// Project fetches the instance of typeName stored under key and projects it. See
// ProjectInstance for how the selection is applied.
func (p *Projector) Project(ctx context.Context, typeName, key string, selection ...string) (map[string]any, error) {
	instance, st, err := p.Fetch(ctx, typeName, key)
	if err != nil {
		return nil, err
	}
	return p.ProjectInstance(st.Name(), instance, selection...)
}

// ProjectInstance projects an instance already in hand. With no selection every
// declared property of the instance is projected. Otherwise only the selected
// properties are, plus all other declared properties when fallback is enabled; a
// selection path such as "Home/City" projects a nested object.
func (p *Projector) ProjectInstance(typeName string, instance any, selection ...string) (map[string]any, error) {
	st, err := p.model.Type(typeName)
	if err != nil {
		return nil, err
	}

	opts := []projection.Option{projection.WithTypeName(st.Name())}
	if len(selection) == 0 {
		opts = append(opts, projection.WithInstance(instance, true))
	} else {
		c, err := projection.Select(p.model, st.Name(), instance, selection...)
		if err != nil {
			p.logger.Warn("selection failed", "type", st.Name(), "selection", selection, "error", err)
			return nil, err
		}
		opts = append(opts,
			projection.WithContainer(c),
			projection.WithInstance(instance, p.fallback),
		)
	}

	out, err := projection.Materialize(projection.NewDynamic(p.model, opts...), p.provider)
	if err != nil {
		p.logger.Warn("projection failed", "type", st.Name(), "error", err)
		return nil, err
	}
	return out, nil
}
