package packet

import (
	"testing"

	"github.com/go-pelza/pelza/internal/bitio"
	"github.com/go-pelza/pelza/internal/lzdict"
)

func TestLengthCodecRoundTrip(t *testing.T) {
	for length := 2; length <= 273; length++ {
		buf := make([]byte, 8)
		e := bitio.NewEmitter(buf, 0)
		EncodeLength(e, length)
		e.Tail()

		s := bitio.NewStream(buf)
		if got := DecodeLength(s); got != length {
			t.Fatalf("length %d round-tripped to %d", length, got)
		}
	}
}

func TestDistanceCodecRoundTrip(t *testing.T) {
	distances := []uint32{1, 2, 3, 4, 5, 6, 7, 8, 16, 17, 100, 1000, 65535, 1 << 20, 1 << 30}
	for _, d := range distances {
		buf := make([]byte, 16)
		e := bitio.NewEmitter(buf, 0)
		EncodeDistance(e, d)
		e.Tail()

		s := bitio.NewStream(buf)
		if got := DecodeDistance(s); got != d {
			t.Fatalf("distance %d round-tripped to %d", d, got)
		}
	}
}

func TestLiteralCodecRoundTrip(t *testing.T) {
	var enc LiteralCodec
	var dec LiteralCodec

	input := []byte("The Quick Brown Fox! 0xFF 0x00")
	msbBuf := make([]byte, len(input)+4)
	loBuf := make([]byte, len(input)+4)
	msbE := bitio.NewEmitter(msbBuf, 0)
	loE := bitio.NewEmitter(loBuf, 0)

	for _, b := range input {
		enc.Encode(msbE, loE, b)
	}
	msbN := msbE.Tail()
	loE.Tail()

	msbS := bitio.NewStream(msbBuf[:msbN])
	loS := bitio.NewStream(loBuf)
	for i, want := range input {
		got := dec.Decode(msbS, loS)
		if got != want {
			t.Fatalf("byte %d: got %#x want %#x", i, got, want)
		}
	}
}

func TestRingUseMovesToFrontAndDedups(t *testing.T) {
	var r Ring
	r.Use(10)
	r.Use(20)
	r.Use(30)
	r.Use(40)
	if r.d != [4]uint32{40, 30, 20, 10} {
		t.Fatalf("ring after 4 distinct uses = %v", r.d)
	}

	r.Use(20)
	if r.d != [4]uint32{20, 40, 30, 10} {
		t.Fatalf("ring after reusing 20 = %v", r.d)
	}
}

func TestEncodeDecodeMatchEvents(t *testing.T) {
	streamBuf := func() []byte { return make([]byte, 64) }
	typeBuf, msbBuf, loBuf, sizeBuf, offBuf := streamBuf(), streamBuf(), streamBuf(), streamBuf(), streamBuf()

	es := &EncodeStreams{
		Type:       bitio.NewEmitter(typeBuf, 0),
		LiteralMSB: bitio.NewEmitter(msbBuf, 0),
		Literal:    bitio.NewEmitter(loBuf, 0),
		Size:       bitio.NewEmitter(sizeBuf, 0),
		Offset:     bitio.NewEmitter(offBuf, 0),
	}

	enc := NewEncoder()
	enc.EncodeLiteral(es, 'h')
	enc.EncodeMatch(es, lzdict.Match(4, 3, -1)) // fresh MATCH, ring becomes [4,0,0,0]
	enc.EncodeMatch(es, lzdict.Match(4, 1, 0))  // SHORTREP reusing ring[0]
	enc.EncodeMatch(es, lzdict.Match(7, 5, -1)) // fresh MATCH, ring becomes [7,4,0,0]
	enc.EncodeMatch(es, lzdict.Match(4, 6, 1))  // LONGREP1 reusing ring[1]

	typeN := es.Type.Tail()
	msbN := es.LiteralMSB.Tail()
	es.Literal.Tail()
	es.Size.Tail()
	es.Offset.Tail()

	ds := &DecodeStreams{
		Type:       bitio.NewStream(typeBuf[:typeN]),
		LiteralMSB: bitio.NewStream(msbBuf[:msbN]),
		Literal:    bitio.NewStream(loBuf),
		Size:       bitio.NewStream(sizeBuf),
		Offset:     bitio.NewStream(offBuf),
	}

	dec := NewDecoder()

	p := dec.Next(ds)
	if !p.IsLiteral || p.Literal != 'h' {
		t.Fatalf("packet 0 = %+v, want literal 'h'", p)
	}

	p = dec.Next(ds)
	if p.IsLiteral || p.Distance != 4 || p.Length != 3 {
		t.Fatalf("packet 1 = %+v, want match(4,3)", p)
	}

	p = dec.Next(ds)
	if p.IsLiteral || p.Distance != 4 || p.Length != 1 {
		t.Fatalf("packet 2 = %+v, want shortrep(4,1)", p)
	}

	p = dec.Next(ds)
	if p.IsLiteral || p.Distance != 7 || p.Length != 5 {
		t.Fatalf("packet 3 = %+v, want match(7,5)", p)
	}

	p = dec.Next(ds)
	if p.IsLiteral || p.Distance != 4 || p.Length != 6 {
		t.Fatalf("packet 4 = %+v, want longrep(4,6)", p)
	}
}
