package order

import "errors"

var (
	// ErrNotFound means the referenced order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrNoItems rejects an order with an empty item list.
	ErrNoItems = errors.New("order must contain at least one item")

	// ErrInvalidQuantity rejects a line item with quantity below 1.
	ErrInvalidQuantity = errors.New("order item quantity must be at least 1")

	// ErrInvalidStatus rejects a status value outside the closed set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidTransition rejects a status change the lifecycle does not
	// allow, including any change from a terminal status.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrNotCancellable rejects a cancellation whose eligibility conditions
	// no longer hold.
	ErrNotCancellable = errors.New("order can no longer be cancelled")

	// ErrCurrencyMismatch rejects an order whose items are priced in
	// different currencies.
	ErrCurrencyMismatch = errors.New("order items use mixed currencies")
)
