package pelza

import (
	"bytes"
	"encoding/binary"

	"github.com/go-pelza/pelza/internal/arith"
	"github.com/go-pelza/pelza/internal/bitio"
	"github.com/go-pelza/pelza/internal/container"
	"github.com/go-pelza/pelza/internal/lzdict"
	"github.com/go-pelza/pelza/internal/packet"
	"github.com/go-pelza/pelza/internal/xlog"
)

// Stats tallies the packet types a Compress call emitted, alongside
// the input and final container sizes. It mirrors the counters
// minify.c printed after every run.
type Stats struct {
	Literals  int
	Matches   int
	ShortReps int
	LongRep0  int
	LongRep1  int
	LongRep2  int
	LongRep3  int

	InputSize      int
	CompressedSize int
}

// EstimateCompressSize returns a safe upper bound on the number of
// bytes Compress needs to hold the compressed form of an input of the
// given size.
func EstimateCompressSize(inputSize int) int {
	n := inputSize
	if n < 4096 {
		n = 4096
	}
	return n * 4
}

// Compress encodes input into pelza's container format using p. It
// self-verifies by decompressing its own output and comparing it
// against input before returning, so a caller never receives a
// container pelza itself cannot read back.
func Compress(input []byte, p Params) (out []byte, stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, stats, err = nil, Stats{}, newError(KindBufferTooSmall, "%v", r)
		}
	}()

	if verr := p.Verify(); verr != nil {
		return nil, Stats{}, verr
	}
	p = p.normalize()

	if len(input) == 0 {
		return []byte{}, Stats{}, nil
	}

	events := lzdict.Find(input)

	streamCap := len(input) + 64
	typeBuf := make([]byte, streamCap)
	msbBuf := make([]byte, streamCap)
	litBuf := make([]byte, streamCap)
	sizeBuf := make([]byte, streamCap)
	offBuf := make([]byte, streamCap)

	es := &packet.EncodeStreams{
		Type:       bitio.NewEmitter(typeBuf, 0),
		LiteralMSB: bitio.NewEmitter(msbBuf, 0),
		Literal:    bitio.NewEmitter(litBuf, 0),
		Size:       bitio.NewEmitter(sizeBuf, 0),
		Offset:     bitio.NewEmitter(offBuf, 0),
	}
	enc := packet.NewEncoder()

	for _, ev := range events {
		switch ev.Kind {
		case lzdict.EventLiteral:
			for i := 0; i < ev.Length; i++ {
				enc.EncodeLiteral(es, input[ev.Start+i])
			}
			stats.Literals += ev.Length
		case lzdict.EventMatch:
			enc.EncodeMatch(es, ev)
			switch {
			case ev.LastIndex < 0:
				stats.Matches++
			case ev.Length == 1:
				stats.ShortReps++
			default:
				switch ev.LastIndex {
				case 0:
					stats.LongRep0++
				case 1:
					stats.LongRep1++
				case 2:
					stats.LongRep2++
				case 3:
					stats.LongRep3++
				}
			}
		}
	}

	var lens container.StreamLengths
	lens[0] = es.Type.Tail()
	lens[1] = es.LiteralMSB.Tail()
	lens[2] = es.Literal.Tail()
	lens[3] = es.Size.Tail()
	lens[4] = es.Offset.Tail()

	var payload bytes.Buffer
	headerBuf := make([]byte, 64)
	headerLen := container.WriteHeader(headerBuf, lens)
	payload.Write(headerBuf[:headerLen])
	payload.Write(typeBuf[:lens[0]])
	payload.Write(msbBuf[:lens[1]])
	payload.Write(litBuf[:lens[2]])
	payload.Write(sizeBuf[:lens[3]])
	payload.Write(offBuf[:lens[4]])

	arithBuf := make([]byte, EstimateCompressSize(payload.Len()))
	arithLen := arith.Encode(arithBuf, payload.Bytes(), uint32(p.WindowSize))

	out = make([]byte, 2+arithLen)
	binary.LittleEndian.PutUint16(out, uint16(p.WindowSize))
	copy(out[2:], arithBuf[:arithLen])

	stats.InputSize = len(input)
	stats.CompressedSize = len(out)

	if verified, verr := Decompress(out, len(input)); verr != nil || !bytes.Equal(verified, input) {
		return nil, Stats{}, newError(KindMalformedInput, "self-verification failed")
	}

	if p.Logger != nil {
		xlog.Printf(p.Logger, "pelza: compressed %d -> %d bytes (lit=%d match=%d shortrep=%d longrep=%d/%d/%d/%d)",
			stats.InputSize, stats.CompressedSize, stats.Literals, stats.Matches, stats.ShortReps,
			stats.LongRep0, stats.LongRep1, stats.LongRep2, stats.LongRep3)
	}

	return out, stats, nil
}

// Decompress reverses Compress. outputSize must be the exact original
// uncompressed length; callers that invoke Decompress directly (as
// opposed to through Compress's self-verification) are expected to
// have recorded it alongside the compressed blob, matching spec.md
// §6's "caller knows the original size" invariant.
func Decompress(compressed []byte, outputSize int) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, newError(KindMalformedInput, "%v", r)
		}
	}()

	if outputSize == 0 {
		return []byte{}, nil
	}
	if len(compressed) < 2 {
		return nil, newError(KindMalformedInput, "container shorter than the window-size header")
	}

	window := binary.LittleEndian.Uint16(compressed)
	scratch := make([]byte, EstimateCompressSize(outputSize))
	arith.Decode(scratch, compressed[2:], uint32(window))

	lens, headerLen := container.ReadHeader(scratch)

	total := headerLen
	for _, n := range lens {
		total += n
	}
	if total > len(scratch) {
		return nil, newError(KindMalformedInput, "stream lengths %v exceed scratch buffer", lens)
	}

	off := headerLen
	region := func(n int) []byte {
		r := scratch[off : off+n]
		off += n
		return r
	}

	ds := &packet.DecodeStreams{
		Type:       bitio.NewStream(region(lens[0])),
		LiteralMSB: bitio.NewStream(region(lens[1])),
		Literal:    bitio.NewStream(region(lens[2])),
		Size:       bitio.NewStream(region(lens[3])),
		Offset:     bitio.NewStream(region(lens[4])),
	}

	dec := packet.NewDecoder()
	out = make([]byte, outputSize)
	pos := 0
	for pos < outputSize {
		pk := dec.Next(ds)
		if pk.IsLiteral {
			out[pos] = pk.Literal
			pos++
			continue
		}
		if pk.Length <= 0 {
			return nil, newError(KindMalformedInput, "non-positive copy length")
		}
		if int(pk.Distance) <= 0 || int(pk.Distance) > pos {
			return nil, newError(KindMalformedInput, "copy distance %d at output position %d", pk.Distance, pos)
		}
		if pos+pk.Length > outputSize {
			return nil, newError(KindMalformedInput, "copy instruction overruns output buffer")
		}
		for i := 0; i < pk.Length; i++ {
			out[pos] = out[pos-int(pk.Distance)]
			pos++
		}
	}

	return out, nil
}
