package bitio

import "testing"

func TestEmitterStreamRoundTrip(t *testing.T) {
	cases := [][]uint32{
		{0},
		{1},
		{0, 1, 1, 0, 1, 0, 0, 1},
		{1, 1, 1, 1, 1, 1, 1, 1, 1},
		{0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 1},
	}

	for _, bits := range cases {
		buf := make([]byte, (len(bits)/8+2)*2)
		e := NewEmitter(buf, 0)
		for _, b := range bits {
			e.Bit(b)
		}
		n := e.Tail()

		s := NewStream(buf[:n])
		for i, want := range bits {
			got := s.Bit()
			if got != want {
				t.Fatalf("bit %d: got %d want %d", i, got, want)
			}
		}

		// Bits beyond n must equal the duplicated last bit of the
		// sequence.
		last := bits[len(bits)-1]
		for i := 0; i < 16; i++ {
			if got := s.Bit(); got != last {
				t.Fatalf("tail bit %d: got %d want %d", i, got, last)
			}
		}
	}
}

func TestEmitterBitsMultiBit(t *testing.T) {
	buf := make([]byte, 16)
	e := NewEmitter(buf, 0)
	e.Bits(0x2A, 6) // 101010
	n := e.Tail()

	s := NewStream(buf[:n])
	if got := s.Bits(6); got != 0x2A {
		t.Fatalf("got %#x want %#x", got, 0x2A)
	}
}

func TestEmitterOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on buffer overflow")
		}
	}()
	buf := make([]byte, 0)
	e := NewEmitter(buf, 0)
	e.Bits(0xFF, 8)
}
