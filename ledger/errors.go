package ledger

import "errors"

// Rejections returned by mutating operations. Returned errors wrap one of
// these and should be checked with errors.Is.
var (
	// ErrInsufficientBalance is returned when the source account holds less
	// than the requested amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrAllowanceExceeded is returned when a spender tries to move more than
	// the owner allowed it to.
	ErrAllowanceExceeded = errors.New("allowance exceeded")
	// ErrOverflow is returned when crediting an account would exceed the
	// amount range.
	ErrOverflow = errors.New("balance overflow")
)

var (
	// ErrNotInitialized is returned by Open when the store holds no ledger.
	ErrNotInitialized = errors.New("ledger is not initialized")
	// ErrAlreadyInitialized is returned by New when the store already holds
	// a ledger.
	ErrAlreadyInitialized = errors.New("ledger is already initialized")

	errInvalidAmount = errors.New("invalid stored amount")
)
