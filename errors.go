package pelza

import "fmt"

// Kind classifies a CompressError so callers can react programmatically
// without parsing the message text.
type Kind int

const (
	// KindAllocationFailure means a computed buffer or arena size
	// overflowed int; compression aborts with no output produced.
	KindAllocationFailure Kind = iota
	// KindBufferTooSmall covers caller-supplied sizing that turned
	// out to be insufficient, including an invalid Params value: in
	// release builds these are programmer bugs, not user errors, but
	// Compress and Decompress still surface them as an error instead
	// of letting the panic that caught them escape.
	KindBufferTooSmall
	// KindMalformedInput means the compressed container failed to
	// decode: stream lengths disagree with the container size, or a
	// copy instruction reaches before the start of the output.
	KindMalformedInput
)

func (k Kind) String() string {
	switch k {
	case KindAllocationFailure:
		return "allocation failure"
	case KindBufferTooSmall:
		return "buffer too small"
	case KindMalformedInput:
		return "malformed input"
	default:
		return "unknown error"
	}
}

// CompressError wraps a codec failure with its Kind.
type CompressError struct {
	Kind Kind
	Msg  string
}

func (e *CompressError) Error() string {
	return fmt.Sprintf("pelza: %s: %s", e.Kind, e.Msg)
}

func newError(kind Kind, format string, args ...interface{}) *CompressError {
	return &CompressError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
