package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness conflict on insert.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the caller lacks the role required for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrEmptyCart is returned when an order is placed over an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidStatus is returned for order status values outside the enum.
	ErrInvalidStatus = errors.New("invalid order status")
)

// InvalidInputError reports a request rejected by validation. Its message is
// safe to show to the caller; anything else is a server fault.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string { return e.Reason }

// InvalidInput builds an InvalidInputError.
func InvalidInput(reason string) error {
	return &InvalidInputError{Reason: reason}
}
