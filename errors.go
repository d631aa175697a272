package relata

import "errors"

var (
	// ErrTypeMismatch reports a value whose runtime type does not match the
	// relation type's declared value type.
	ErrTypeMismatch = errors.New("value type does not match relation type")

	// ErrIllegalMutation reports a write to a write-once relation that was
	// already written, or an external write to a read-only relation.
	ErrIllegalMutation = errors.New("illegal mutation of relation")

	// ErrConstraintViolation reports a proposed value rejected by a
	// constraint relation type during pre-image dispatch.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrImmutableViolation reports a mutation attempted on a frozen host,
	// binding or container value.
	ErrImmutableViolation = errors.New("mutation of immutable relatable")

	// ErrUnsupportedDerivation reports an automatic relation type invoked
	// without its required policy function. This is a programming error.
	ErrUnsupportedDerivation = errors.New("automatic type has no derivation configured")
)
