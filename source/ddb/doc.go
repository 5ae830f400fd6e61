/*
Package ddb provides a DynamoDB implementation of the Source interface.

The Source supports:
  - Single-table design patterns
  - Macro-based key expansion from the schema type's key template (e.g., "USER#{ID}")
  - Composite keys through GetByKey
  - Strongly consistent reads

Macro Expansion:
Key templates are declared per entity type in the model document:

	keyTemplate:
	  PK: "USER#{ID}"     # Becomes "USER#123"
	  SK: "PROFILE"       # Static value

Items are returned as map[string]types.AttributeValue; the adapter package reads
attributes off them directly, so no Go type has to be declared for a stored entity.
*/
package ddb
