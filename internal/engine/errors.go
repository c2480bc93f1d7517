package engine

import "errors"

var (
	// ErrUnauthorized means the signer may not perform the operation.
	ErrUnauthorized = errors.New("signer not authorized")

	// ErrInvalidState means the presale is not in a phase that permits the
	// operation.
	ErrInvalidState = errors.New("operation not allowed in current presale state")

	// ErrLimitViolation covers contribution window and amount bound failures.
	ErrLimitViolation = errors.New("contribution limit violated")

	// ErrArithmeticOverflow means a fee or token computation left uint64 range.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrInvalidReference means a referrer or record reference does not match.
	ErrInvalidReference = errors.New("invalid record reference")

	// ErrAlreadyClaimed means a one-shot payout was already taken.
	ErrAlreadyClaimed = errors.New("already claimed")

	// ErrInvalidParams covers malformed initialization parameters.
	ErrInvalidParams = errors.New("invalid parameters")
)
