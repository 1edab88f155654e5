package types

import "errors"

// Constraint violations. Every rejected write surfaces exactly one of these
// so callers can render a precise message. All are detected before any row
// is committed; the open transaction rolls back on rejection.
var (
	// ErrInvalidRange: end_age is not strictly greater than start_age.
	ErrInvalidRange = errors.New("end age must be greater than start age")

	// ErrOutOfBounds: a child's age range is not contained within its
	// parent's age range.
	ErrOutOfBounds = errors.New("age range exceeds parent range")

	// ErrInconsistentDuration: a block's stored duration_years disagrees
	// with end_age - start_age beyond DurationTolerance.
	ErrInconsistentDuration = errors.New("stored duration disagrees with age range")

	// ErrDurationTooShort: a block's duration is below the minimum for
	// its layer tier.
	ErrDurationTooShort = errors.New("duration below layer minimum")

	// ErrUnknownLayerNumber: no duration rule exists for the tier.
	// Unrecognized tiers fail closed; they are never silently accepted.
	ErrUnknownLayerNumber = errors.New("no duration rule for layer number")

	// ErrInvalidLayerNumber: layer_number is not a positive integer.
	ErrInvalidLayerNumber = errors.New("layer number must be positive")

	// ErrLayerNumberMismatch: a block's denormalized layer_number does not
	// match its owning layer's ordinal.
	ErrLayerNumberMismatch = errors.New("block layer number does not match owning layer")
)

// Operation errors.
var (
	ErrNotFound           = errors.New("entity not found")
	ErrInvalidID          = errors.New("invalid entity ID")
	ErrInvalidData        = errors.New("invalid entity data")
	ErrStorageUnavailable = errors.New("storage engine unavailable")
)
