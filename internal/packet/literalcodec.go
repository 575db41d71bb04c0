package packet

import "github.com/go-pelza/pelza/internal/bitio"

// LiteralCodec tracks the one-byte prev_literal register the
// MSB-diff scheme needs on both the encode and decode sides: ASCII
// text keeps a near-constant high bit, so XORing each literal's high
// bit against the previous one makes the LITERAL_MSB stream highly
// compressible.
type LiteralCodec struct {
	prev byte
}

// Encode writes lit into the LITERAL_MSB and LITERAL streams and
// updates the prev_literal register.
func (c *LiteralCodec) Encode(msb, lo *bitio.Emitter, lit byte) {
	msb.Bits(uint32((lit^c.prev)>>7), 1)
	lo.Bits(uint32(lit&0x7F), 7)
	c.prev = lit
}

// Decode reverses Encode.
func (c *LiteralCodec) Decode(msb, lo *bitio.Stream) byte {
	diff := byte(msb.Bit()) << 7
	low := byte(lo.Bits(7))
	lit := (c.prev & 0x80) ^ diff | low
	c.prev = lit
	return lit
}
