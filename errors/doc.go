/*
Package errors provides semantic error types for the memstore library.

The package defines the few failure scenarios the library has, each with a
sentinel that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrNotFound      = errors.New("not found")
	    ErrAlreadyExists = errors.New("already exists")
	    ErrInvalidInput  = errors.New("invalid input")
	    ErrHandlerFailed = errors.New("event handler failed")
	)

Lookup misses inside a Store are never errors; they are reported with a
boolean. NotFoundError is used by the Registry and by data sources.

Usage:

	users, err := memstore.Lookup[User, memstore.NoMethods](reg, "users")
	if errors.IsNotFound(err) {
	    // register it
	}

	// Handler failures are only ever logged, as a HandlerError:
	err := errors.NewHandlerError("users", subID, "add", cause)
	errors.IsHandlerFailure(err) // true
*/
package errors
