// Package container lays out the arithmetic-coded payload: a header
// of five stream byte-lengths followed by the TYPE, LITERAL_MSB,
// LITERAL, SIZE and OFFSET streams themselves, each byte-aligned.
package container

import (
	"github.com/go-pelza/pelza/internal/bitio"
	"github.com/go-pelza/pelza/internal/packet"
)

// NumStreams is the number of independent bit streams a compressed
// block carries.
const NumStreams = 5

// StreamLengths holds the byte length of each of the five streams, in
// wire order: TYPE, LITERAL_MSB, LITERAL, SIZE, OFFSET.
type StreamLengths [NumStreams]int

// WriteHeader emits lens using the same distance-prefix code as the
// OFFSET stream, and returns the number of header bytes written. Each
// length n is stored as n+1, because the distance code cannot carry a
// zero; ReadHeader subtracts the 1 again.
func WriteHeader(dst []byte, lens StreamLengths) int {
	e := bitio.NewEmitter(dst, 0)
	for _, n := range lens {
		packet.EncodeDistance(e, uint32(n)+1)
	}
	return e.Tail()
}

// ReadHeader reads a StreamLengths from the front of src and returns
// it along with the number of header bytes consumed, so the caller
// knows where the TYPE stream begins.
func ReadHeader(src []byte) (StreamLengths, int) {
	s := bitio.NewStream(src)
	var lens StreamLengths
	for i := range lens {
		lens[i] = int(packet.DecodeDistance(s) - 1)
	}
	return lens, s.BytePos()
}
