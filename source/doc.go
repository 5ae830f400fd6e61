/*
Package source defines where projected instances come from.

The main interface is Source, which fetches one stored instance of a schema type:

	type Source interface {
	    Get(ctx context.Context, typ *model.SchemaType, key string) (any, error)
	}

Implementations:
  - ddb: DynamoDB GetItem lookups driven by the type's key template
  - mock: In-memory implementation for testing

A Router dispatches by schema type name, so one projector can read different types
from different tables or backends.
*/
package source
