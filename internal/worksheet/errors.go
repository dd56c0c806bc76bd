package worksheet

import "errors"

var (
	ErrNoDate         = errors.New("no work date selected")
	ErrInvalidDate    = errors.New("invalid work date")
	ErrNotReady       = errors.New("worksheet is not ready")
	ErrUnknownSection = errors.New("unknown section")
	ErrDetailIndex    = errors.New("overtime detail index out of range")
	ErrInvalidValue   = errors.New("invalid value")
	// ErrSuperseded is returned by a fetch whose result was discarded because
	// a newer select or refresh started while it was in flight.
	ErrSuperseded = errors.New("superseded by a newer request")
)
