/*
Package errors provides semantic error types for the projector.

The package defines the failure kinds of a projection with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNullMapperProvider     = errors.New("mapper provider is nil")
	    ErrInvalidMapper          = errors.New("invalid property mapper")
	    ErrInvalidPropertyMapping = errors.New("invalid property mapping")
	    ErrUnknownType            = errors.New("unknown schema type")
	    ErrNotFound               = errors.New("instance not found")
	)

Usage:

	out, err := w.ToMap(provider)
	if err != nil {
	    if errors.IsInvalidPropertyMapping(err) {
	        // the mapper returned "" for a declared property
	        return nil, fmt.Errorf("bad naming policy: %w", err)
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewInvalidMapperError("Demo.Person")
	err := errors.NewInvalidPropertyMappingError("Demo.Person", "Name")
	err := errors.NewUnknownTypeError("Demo.Missing")

Mapper and type failures are caller or configuration defects; none of them is transient.
The error types implement the error interface and support wrapping, making them
compatible with Go's standard error handling patterns.
*/
package errors
