package quickcheck

import "errors"

var (
	// ErrUnregisteredType is returned by Resolve when a descriptor has no
	// registered generator and none can be synthesized from its elements.
	ErrUnregisteredType = errors.New("no generator registered for type")

	// ErrInvalidRange is returned when a uniform draw is requested over an
	// empty range (low > high).
	ErrInvalidRange = errors.New("invalid range")

	// ErrGenerationExhausted is returned when a constrained generator (e.g.
	// a unique-keys mapping) runs out of resample budget. It aborts the
	// current trial only, never the whole run.
	ErrGenerationExhausted = errors.New("generation exhausted resample budget")

	// ErrAlreadyRunning is returned by Driver.Run when the driver has
	// already been started. Drivers are single shot.
	ErrAlreadyRunning = errors.New("driver already running or spent")

	// ErrTooManyDiscards aborts a run whose property discards too large a
	// share of its inputs.
	ErrTooManyDiscards = errors.New("too many trials discarded")

	// ErrBadDescriptor is returned by ParseDescriptor on malformed input.
	ErrBadDescriptor = errors.New("malformed type descriptor")
)

// Discard may be returned as the error of a property to reject the generated
// input without counting the trial as a pass or a failure.
var Discard = errors.New("input discarded by property")
