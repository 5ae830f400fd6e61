/*
Package model is the schema registry projections resolve their types through.

The model holds:
  - Structured schema types (entity or complex) with ordered structural properties
  - Key properties and optional storage key templates for entity types
  - Bindings from Go types to schema types, plus a cache of resolved bindings

Declaring Types:

	person := model.MustSchemaType("Demo.Person", model.KindEntity,
	    []model.StructuralProperty{
	        {Name: "ID", Type: "string"},
	        {Name: "Name", Type: "string"},
	        {Name: "Age", Type: "int"},
	    },
	    model.WithKey("ID"),
	)
	m, _ := model.New(model.WithNamespace("Demo"))
	m.MustRegister(person)

From Go structs:

	type Person struct {
	    ID   string `json:"id" projector:"key"`
	    Name string `json:"name"`
	}
	model.RegisterStruct[Person](m, model.KindEntity)

From YAML:

	m, err := model.LoadFile("model.yaml")

Native Type Resolution:
ResolveNative maps a Go type to its schema type, first through explicit bindings
(Bind, BindNative, RegisterStruct) and then by matching the Go type name against
registered names. Results are cached in the model for its whole lifetime and shared
by every projection built on it; the cache is safe for concurrent use.

The model should be populated during initialization; schema types are immutable.
*/
package model
