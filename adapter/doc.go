/*
Package adapter reads property values off raw source instances.

ReadProperty is the typed reader: it reads Go structs by json tag or field name,
string-keyed maps, and raw DynamoDB items (decoding the attribute with the
attributevalue package).

On top of it sit the two fallback adapters a projection uses when its container does
not supply a property:

	fb := adapter.NewFallback(instance, schemaType, nil)
	v, ok := fb.TryGetProperty("Name")

NewFallback selects ComplexAdapter for complex types and EntityAdapter otherwise.
Both only answer for properties declared on the schema type; EntityAdapter also
exposes the key values of the instance.
*/
package adapter
