package pelza

import (
	"log"

	"github.com/go-pelza/pelza/internal/prob"
)

// DefaultWindowSize is used when a caller leaves Params zero-valued.
const DefaultWindowSize = 128

// Params collects the knobs a caller has over one Compress call.
type Params struct {
	// WindowSize is the number of recent bits the adaptive probability
	// model remembers, in [1, prob.MaxWindow]. Smaller windows adapt
	// faster to local statistics; larger windows are steadier on
	// uniform data. Zero means DefaultWindowSize.
	WindowSize int

	// Logger, when non-nil, receives one trace line per Compress call
	// with the packet-type histogram and container sizes.
	Logger *log.Logger
}

// normalize returns p with defaults filled in: a zero WindowSize
// becomes DefaultWindowSize.
func (p Params) normalize() Params {
	if p.WindowSize == 0 {
		p.WindowSize = DefaultWindowSize
	}
	return p
}

// Verify checks that p's fields are in range, after defaults are applied.
func (p Params) Verify() error {
	p = p.normalize()
	if p.WindowSize < 1 || p.WindowSize > prob.MaxWindow {
		return newError(KindBufferTooSmall, "window size %d outside [1, %d]", p.WindowSize, prob.MaxWindow)
	}
	return nil
}
