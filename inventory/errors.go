package inventory

import "errors"

var (
	// ErrNegativeQuantity rejects quantities below zero before any
	// state is touched.
	ErrNegativeQuantity = errors.New("quantity must not be negative")

	// ErrUnknownGroup is returned when a group id does not exist in
	// the catalog.
	ErrUnknownGroup = errors.New("counting group not found")

	// ErrUnknownProduct is returned when a product id does not exist
	// in the catalog.
	ErrUnknownProduct = errors.New("product not found")

	// ErrPrecondition is returned when an operation's invariant does
	// not hold, e.g. resolving a product before both counters have a
	// recorded total.
	ErrPrecondition = errors.New("precondition not met")
)
