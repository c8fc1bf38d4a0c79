package envelope

import "errors"

var (
	// ErrUnknownEnvelope means a referenced name is not in the fixed set.
	ErrUnknownEnvelope = errors.New("unknown envelope")
	// ErrEnvelopeLocked means the active envelope's spend rule rejected
	// an addition.
	ErrEnvelopeLocked = errors.New("envelope is locked")
	// ErrItemNotFound means an update targeted a missing item.
	ErrItemNotFound = errors.New("item not found")
	// ErrDuplicateItem means an added item reused an existing ID.
	ErrDuplicateItem = errors.New("duplicate item id")
	// ErrInvalidAmount means a negative amount, goal, or price.
	ErrInvalidAmount = errors.New("invalid amount")
)
