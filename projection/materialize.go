/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package projection

import (
	"fmt"

	"github.com/suparena/projector/container"
	"github.com/suparena/projector/mapper"
)

// Materialize is ToMapWith followed by the same treatment of every nested container
// value, each wrapped as its property's declared type. It is the recursion a
// serializer performs over a projection tree.
func Materialize(w *Wrapper, provider mapper.Provider) (map[string]any, error) {
	fields, err := w.ToFields(provider)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(fields))
	for _, f := range fields {
		nested, ok := f.Value.(*container.Container)
		if !ok || nested == nil {
			out[f.Key] = f.Value
			continue
		}

		// fields are non-empty, so the schema type resolved
		st, _ := w.SchemaType()
		prop, _ := st.Property(f.Property)
		child := NewDynamic(w.lookup,
			WithContainer(nested),
			WithTypeName(prop.ElementType()),
			WithReader(w.read),
		)
		v, err := Materialize(child, provider)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Property, err)
		}
		out[f.Key] = v
	}
	return out, nil
}
