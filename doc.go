/*
Package projector presents selectively projected structured objects.

A projection names the subset of an instance's properties a caller asked for. The
projector keeps those values in a container, falls back to the full instance for
anything else the schema declares, and materializes the result into a map whose keys
come from a pluggable naming policy.

The library is organised bottom-up:
  - model: schema types (entity or complex), the registry and native type resolution
  - mapper: property naming policies and per-type providers
  - container: the explicitly selected values of one projection
  - adapter: typed property readers over structs, maps and DynamoDB items
  - projection: the Wrapper, the selection builder and nested materialization
  - source: where instances come from (DynamoDB, in-memory)

Basic Usage:

	// Load the model
	m, _ := model.LoadFile("model.yaml")

	// Read instances from DynamoDB
	src, _ := ddb.NewWithCredentials(ctx, accessKey, secretKey, region, "people")

	// Project
	p, _ := projector.New(m, src, projector.WithMapperProvider(mapper.Constant(mapper.CamelCase)))
	out, err := p.Project(ctx, "Person", "p-1", "Name", "Home/City")

Projecting a Go value directly:

	w := projection.New[Person](m,
	    projection.WithContainer(container.New().Add("Name", "Ada")),
	    projection.WithInstance(person, true),
	)
	out, err := w.ToMap()
*/
package projector
