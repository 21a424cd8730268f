/*
Package errors provides semantic error types for the EntityCRUD library.

The package defines the failure taxonomy of the CRUD core with specific types
that can be checked using the standard errors.Is() function or the provided
helper functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("entity not found")
	    ErrAlreadyExists = errors.New("entity already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrNotResolved   = errors.New("type not resolved")
	    ErrNoSchema      = errors.New("no schema found for type")
	    ErrPersistence   = errors.New("persistence failure")
	)

Usage:

	users, err := svc.Query(ctx, cond)
	if err != nil {
	    if errors.IsSchemaError(err) {
	        // no table registered for the entity type
	    }
	    return nil, err
	}

	// Classify at a transport boundary
	switch errors.KindOf(err) {
	case errors.KindValidation:
	    // caller input was rejected before touching storage
	}

PersistenceError wraps the collaborator's error and supports Unwrap, so the
original cause stays reachable through errors.As.
*/
package errors
