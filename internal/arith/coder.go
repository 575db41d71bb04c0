// Package arith implements the adaptive binary arithmetic coder shared
// by the encoder and decoder. Both directions drive the same
// prob.Model with the same sequence of (p0, p1) lookups followed by
// Update calls, which is what keeps them bit-identical.
package arith

import (
	"github.com/go-pelza/pelza/internal/bitio"
	"github.com/go-pelza/pelza/internal/prob"
)

// 32-bit range coder quadrant boundaries.
const (
	top    = uint32(0x80000000)
	bottom = uint32(0x40000000)
	upper  = uint32(0xC0000000)
)

// Encode writes a bit-for-bit reversible encoding of src into dst
// using an adaptive binary model with the given window size (see
// prob.New), and returns the number of bytes written to dst.
//
// dst must be large enough to hold the output; Encode panics if it
// overflows, since that indicates the caller under-sized the buffer
// (see EstimateCompressSize at the pipeline boundary) rather than a
// recoverable condition.
func Encode(dst, src []byte, window uint32) int {
	if len(src) == 0 {
		return 0
	}

	e := &encoder{
		model: prob.New(window),
		low:   0,
		high:  ^uint32(0),
		data:  1,
		dst:   dst,
	}

	for _, b := range src {
		in := uint32(b) | 0x100
		for in != 1 {
			e.encodeBit(in & 1)
			in >>= 1
		}
	}
	e.flush()
	return e.pos
}

type encoder struct {
	model   *prob.Model
	low     uint32
	high    uint32
	pending uint32
	dst     []byte
	pos     int
	data    uint32
}

// emit packs one output bit MSB-first into dst, the same bit order
// bitio.Emitter writes and bitio.Stream reads back.
func (e *encoder) emit(bit uint32) {
	e.data = (e.data << 1) | (bit & 1)
	if e.data > 0xFF {
		if e.pos >= len(e.dst) {
			panic("arith: output buffer too small")
		}
		e.dst[e.pos] = byte(e.data)
		e.pos++
		e.data = 1
	}
}

func (e *encoder) encodeBit(bit uint32) {
	p0, p1 := e.model.P()
	rng := uint64(e.high) - uint64(e.low) + 1
	mid := e.low + uint32(rng*uint64(p0)/uint64(p0+p1)) - 1

	e.model.Update(bit)

	if bit == 0 {
		e.high = mid
	} else {
		e.low = mid + 1
	}

	for {
		switch {
		case e.high < top || e.low >= top:
			out := uint32(0)
			if e.high >= top {
				out = 1
			}
			e.emit(out)

			out ^= 1
			for ; e.pending > 0; e.pending-- {
				e.emit(out)
			}
		case e.low >= bottom && e.high < upper:
			e.pending++
			e.low -= bottom
			e.high -= bottom
		default:
			return
		}
		e.low <<= 1
		e.high = (e.high << 1) + 1
	}
}

func (e *encoder) flush() {
	out := uint32(0)
	if e.low >= bottom {
		out = 1
	}
	e.emit(out)

	out ^= 1
	e.emit(out)
	e.pending = 0
	for e.data != 1 {
		e.emit(out)
	}
}

// Decode reverses Encode: it fills dst (whose length determines how
// many bytes are decoded) from the arithmetic-coded bits in src, using
// the same window size the data was encoded with.
func Decode(dst, src []byte, window uint32) {
	if len(dst) == 0 {
		return
	}

	d := &decoder{
		model:  prob.New(window),
		low:    0,
		high:   ^uint32(0),
		stream: bitio.NewStream(src),
	}
	d.value = d.stream.Bits(32)

	for i := range dst {
		var out byte
		for bitpos := 0; bitpos < 8; bitpos++ {
			bit := d.decodeBit()
			out |= byte(bit) << uint(bitpos)
		}
		dst[i] = out
	}
}

type decoder struct {
	model  *prob.Model
	stream *bitio.Stream
	low    uint32
	high   uint32
	value  uint32
}

func (d *decoder) decodeBit() uint32 {
	p0, p1 := d.model.P()
	rng := uint64(d.high) - uint64(d.low) + 1
	mid := d.low + uint32(rng*uint64(p0)/uint64(p0+p1)) - 1

	bit := uint32(0)
	if d.value > mid {
		bit = 1
	}
	d.model.Update(bit)

	if bit == 0 {
		d.high = mid
	} else {
		d.low = mid + 1
	}

	for {
		switch {
		case d.high < top || d.low >= top:
			// No output on the decode side; the quadrant bit was
			// already consumed into d.value when it was read.
		case d.low >= bottom && d.high < upper:
			d.value -= bottom
			d.low -= bottom
			d.high -= bottom
		default:
			return bit
		}
		d.low <<= 1
		d.high = (d.high << 1) + 1
		d.value = (d.value << 1) | d.stream.Bit()
	}
}
