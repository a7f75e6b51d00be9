/*
Package errors provides semantic error types for the NotifyStore library.

The package defines common error scenarios with specific types that can be
checked using the standard errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound        = errors.New("entity not found")
	    ErrAlreadyExists   = errors.New("entity already exists")
	    ErrInvalidInput    = errors.New("invalid input")
	    ErrConditionFailed = errors.New("condition check failed")
	    ErrNoIndexMap      = errors.New("no index map found for type")
	    ErrConfiguration   = errors.New("invalid dispatch configuration")
	    ErrRouting         = errors.New("no sender registered for notification")
	    ErrDelivery        = errors.New("notification delivery failed")
	)

Usage:

	// Check error type
	n, err := store.GetOne(ctx, "123")
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("notification %s does not exist", "123")
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewRoutingError("123", "SMS")
	err := errors.NewValidationError("phoneNumber", "must not be empty")
	err := errors.NewDeliveryError("123", "EMAIL", cause)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
