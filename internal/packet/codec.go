package packet

import (
	"github.com/go-pelza/pelza/internal/bitio"
	"github.com/go-pelza/pelza/internal/lzdict"
)

// EncodeStreams groups the five output bit streams a packet encoder
// writes into.
type EncodeStreams struct {
	Type, LiteralMSB, Literal, Size, Offset *bitio.Emitter
}

// DecodeStreams groups the five input bit streams a packet decoder
// reads from.
type DecodeStreams struct {
	Type, LiteralMSB, Literal, Size, Offset *bitio.Stream
}

// Encoder drives the five streams from a sequence of literal bytes
// and lzdict.Events, owning the literal MSB-diff register and the
// last-four-distance ring.
type Encoder struct {
	ring Ring
	lit  LiteralCodec
}

// NewEncoder returns an Encoder with a fresh ring and literal state.
func NewEncoder() *Encoder { return &Encoder{} }

// EncodeLiteral emits one literal byte as a LIT packet.
func (e *Encoder) EncodeLiteral(s *EncodeStreams, b byte) {
	s.Type.Bits(0, 1)
	e.lit.Encode(s.LiteralMSB, s.Literal, b)
}

// EncodeMatch emits a Match event as the packet its LastIndex and
// Length select: a fresh-distance MATCH, a one-byte SHORTREP, or a
// LONGREP0-3 reusing a ring slot.
func (e *Encoder) EncodeMatch(s *EncodeStreams, ev lzdict.Event) {
	switch {
	case ev.LastIndex < 0:
		s.Type.Bits(2, 2) // "10"
		EncodeLength(s.Size, ev.Length)
		EncodeDistance(s.Offset, ev.Distance)
	case ev.Length == 1:
		s.Type.Bits(0xC, 4) // "1100" SHORTREP
	default:
		switch ev.LastIndex {
		case 0:
			s.Type.Bits(0xD, 4) // "1101" LONGREP0
		case 1:
			s.Type.Bits(0xE, 4) // "1110" LONGREP1
		case 2:
			s.Type.Bits(0x1E, 5) // "11110" LONGREP2
		case 3:
			s.Type.Bits(0x1F, 5) // "11111" LONGREP3
		default:
			panic("packet: invalid last index")
		}
		EncodeLength(s.Size, ev.Length)
	}
	e.ring.Use(ev.Distance)
}

// Decoder mirrors Encoder on the read side.
type Decoder struct {
	ring Ring
	lit  LiteralCodec
}

// NewDecoder returns a Decoder with a fresh ring and literal state.
func NewDecoder() *Decoder { return &Decoder{} }

// DecodedPacket is either a literal byte or a copy instruction,
// exactly one of which is meaningful depending on IsLiteral.
type DecodedPacket struct {
	IsLiteral bool
	Literal   byte
	Distance  uint32
	Length    int
}

// Next reads one packet from the streams, following §4.5's state
// machine, and updates the ring when the packet is a copy.
func (d *Decoder) Next(s *DecodeStreams) DecodedPacket {
	if s.Type.Bit() == 0 {
		return DecodedPacket{IsLiteral: true, Literal: d.lit.Decode(s.LiteralMSB, s.Literal)}
	}

	var distance uint32
	var length int

	if s.Type.Bit() == 0 {
		length = DecodeLength(s.Size)
		distance = DecodeDistance(s.Offset)
	} else {
		switch s.Type.Bits(2) {
		case 0: // SHORTREP
			distance = d.ring.At(0)
			length = 1
		case 1: // LONGREP0
			distance = d.ring.At(0)
			length = DecodeLength(s.Size)
		case 2: // LONGREP1
			distance = d.ring.At(1)
			length = DecodeLength(s.Size)
		default: // LONGREP2 or LONGREP3
			if s.Type.Bit() == 0 {
				distance = d.ring.At(2)
			} else {
				distance = d.ring.At(3)
			}
			length = DecodeLength(s.Size)
		}
	}

	d.ring.Use(distance)
	return DecodedPacket{Distance: distance, Length: length}
}
