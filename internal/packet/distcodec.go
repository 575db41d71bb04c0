package packet

import (
	"math/bits"

	"github.com/go-pelza/pelza/internal/bitio"
)

// EncodeDistance writes distance (>= 1) using the 6-bit-slot scheme
// shared by the OFFSET stream and the container header's stream
// lengths: let d' = distance-1. If d' < 2 it is emitted directly in 6
// bits; otherwise a 6-bit slot encodes floor(log2(d')) and the parity
// of the bit below its top bit, followed by the remaining low bits of
// d' as payload, for a total of k+5 bits.
func EncodeDistance(e *bitio.Emitter, distance uint32) {
	d := distance - 1
	if d < 2 {
		e.Bits(d, 6)
		return
	}

	k := 31 - bits.LeadingZeros32(d)
	e.Bits(uint32(k)<<1|(d>>uint(k-1))&1, 6)
	if k > 1 {
		e.Bits(d&(uint32(1)<<uint(k-1)-1), k-1)
	}
}

// DecodeDistance reverses EncodeDistance.
func DecodeDistance(s *bitio.Stream) uint32 {
	data := s.Bits(6)
	if data < 2 {
		return data + 1
	}

	extraBits := int((data >> 1) - 1)
	top := (data & 1) + 2
	return (top << uint(extraBits)) + s.Bits(extraBits) + 1
}
