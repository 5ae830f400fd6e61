/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package source_test

import (
	"context"
	"testing"

	"github.com/suparena/projector/errors"
	"github.com/suparena/projector/model"
	"github.com/suparena/projector/source"
	"github.com/suparena/projector/source/mock"
)

func TestRouter(t *testing.T) {
	ctx := context.Background()

	person := model.MustSchemaType("Demo.Person", model.KindEntity,
		[]model.StructuralProperty{{Name: "ID"}}, model.WithKey("ID"))
	order := model.MustSchemaType("Demo.Order", model.KindEntity,
		[]model.StructuralProperty{{Name: "ID"}}, model.WithKey("ID"))
	address := model.MustSchemaType("Demo.Address", model.KindComplex,
		[]model.StructuralProperty{{Name: "City"}})

	people := mock.New().WithInstance("Demo.Person", "p-1", map[string]any{"ID": "p-1"})
	orders := source.Func(func(_ context.Context, typ *model.SchemaType, key string) (any, error) {
		return map[string]any{"ID": key, "Type": typ.Name()}, nil
	})

	t.Run("RoutesByTypeName", func(t *testing.T) {
		r := source.NewRouter(nil)
		if err := r.Register("Demo.Person", people); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if err := r.Register("Demo.Order", orders); err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		got, err := r.Get(ctx, order, "o-9")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.(map[string]any)["Type"] != "Demo.Order" {
			t.Fatalf("Expected the order source, got %v", got)
		}

		if _, err := r.Get(ctx, person, "p-1"); err != nil {
			t.Fatalf("Get failed: %v", err)
		}

		if _, err := r.Get(ctx, address, "x"); !errors.IsNotFound(err) {
			t.Fatalf("Expected not found without a default source, got: %v", err)
		}

		names := r.Names()
		if len(names) != 2 || names[0] != "Demo.Order" || names[1] != "Demo.Person" {
			t.Fatalf("Unexpected names: %v", names)
		}
	})

	t.Run("DefaultSource", func(t *testing.T) {
		r := source.NewRouter(orders)
		got, err := r.Get(ctx, address, "a-1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if got.(map[string]any)["ID"] != "a-1" {
			t.Fatalf("Unexpected instance: %v", got)
		}
	})

	t.Run("RegistrationErrors", func(t *testing.T) {
		r := source.NewRouter(nil)
		if err := r.Register("Demo.Person", nil); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
		_ = r.Register("Demo.Person", people)
		if err := r.Register("Demo.Person", people); !errors.IsAlreadyExists(err) {
			t.Fatalf("Expected already exists error, got: %v", err)
		}
		if _, err := r.Get(ctx, nil, "x"); !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})
}
