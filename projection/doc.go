/*
Package projection presents a selectively projected instance.

A Wrapper combines the values a selection picked explicitly (a container.Container)
with the full source instance they came from, and answers property lookups and
materialization requests for the schema type governing the instance:

	c, _ := projection.Select(m, "Demo.Person", person, "Name")
	w := projection.New[Person](m,
	    projection.WithContainer(c),
	    projection.WithInstance(person, true),
	)

	name, ok := w.TryGetProperty("Name") // container first, then the instance
	out, err := w.ToMap()                // identity keys
	out, err = w.ToMapWith(mapper.Constant(mapper.CamelCase))

Precedence:
A property present in the container, including auto-selected key properties, always
wins over the instance. Materialization seeds the result with the container's
requested entries and then, when fallback is enabled, adds every declared property
of the schema type the wrapper can find.

Schema Type Resolution:
WithTypeName resolves through the model by name; otherwise the element type (T, or
the dynamic type of the instance when T is an interface) is resolved natively through
the model's shared cache. A wrapper resolves at most once.

Concurrency:
Wrappers memoize their schema type, fallback adapter and container lookup table and
are not safe for concurrent use. The model they share is.
*/
package projection
