package packet

import "github.com/go-pelza/pelza/internal/bitio"

// EncodeLength writes length, 2..273, into the SIZE stream. Typical
// match lengths cluster below 20, so the tiers favor a short prefix
// for the common case.
func EncodeLength(e *bitio.Emitter, length int) {
	switch {
	case length <= 9:
		e.Bits(0, 1)
		e.Bits(uint32(length-2), 3)
	case length <= 17:
		e.Bits(2, 2)
		e.Bits(uint32(length-10), 3)
	default:
		e.Bits(3, 2)
		e.Bits(uint32(length-18), 8)
	}
}

// DecodeLength reverses EncodeLength.
func DecodeLength(s *bitio.Stream) int {
	if s.Bit() == 0 {
		return 2 + int(s.Bits(3))
	}
	if s.Bit() == 0 {
		return 10 + int(s.Bits(3))
	}
	return 18 + int(s.Bits(8))
}
