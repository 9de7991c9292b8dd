package resp

import "errors"

// Sentinel errors for the wire-level taxonomy in spec.md §7. Command- and
// execution-level errors (BadArgs, UnknownCommand) live in internal/command.
var (
	// ErrUnsupportedType is returned when a frame's leading byte is not '*':
	// only arrays of bulk strings are accepted at the top level.
	ErrUnsupportedType = errors.New("resp: unsupported type, expected array")

	// ErrMalformedFrame is returned for any structural problem within an
	// otherwise array-shaped frame: a missing \r, an unparseable length, a
	// bad UTF-8 payload, or a frame that truncates mid-element.
	ErrMalformedFrame = errors.New("resp: malformed frame")
)
