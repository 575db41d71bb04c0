// Package pewrap is the boundary between pelza's codec and the PE
// executable format: it validates and inspects an image with the
// standard library's debug/pe, hands the whole image to pelza as an
// opaque byte buffer, and wraps the result in a small loader stub
// built with encoding/binary. It does not rewrite import tables or
// relocations; reconstructing a runnable image from the compressed
// form is a loader's job, not this package's.
package pewrap

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"fmt"

	"github.com/go-pelza/pelza"
)

// magic identifies a pelza-wrapped PE image.
var magic = [4]byte{'P', 'E', 'L', 'Z'}

const stubVersion = 1

// stub is the fixed-size header written ahead of the compressed
// payload. EntryPoint and ImageBase are carried through for a future
// loader stub to consume; pewrap itself never interprets them.
type stub struct {
	Magic          [4]byte
	Version        uint8
	WindowSize     uint16
	OriginalSize   uint32
	CompressedSize uint32
	EntryPoint     uint32
	ImageBase      uint64
}

// Pack validates peImage as a PE file, compresses it whole with
// params, and returns the stub-prefixed wire format.
func Pack(peImage []byte, params pelza.Params) ([]byte, pelza.Stats, error) {
	f, err := pe.NewFile(bytes.NewReader(peImage))
	if err != nil {
		return nil, pelza.Stats{}, fmt.Errorf("pewrap: not a valid PE image: %w", err)
	}
	defer f.Close()

	entryPoint, imageBase := optionalHeaderFields(f)

	if params.WindowSize == 0 {
		params.WindowSize = pelza.DefaultWindowSize
	}
	compressed, stats, err := pelza.Compress(peImage, params)
	if err != nil {
		return nil, pelza.Stats{}, err
	}

	s := stub{
		Magic:          magic,
		Version:        stubVersion,
		WindowSize:     uint16(params.WindowSize),
		OriginalSize:   uint32(len(peImage)),
		CompressedSize: uint32(len(compressed)),
		EntryPoint:     entryPoint,
		ImageBase:      imageBase,
	}

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, s); err != nil {
		return nil, pelza.Stats{}, fmt.Errorf("pewrap: writing stub: %w", err)
	}
	buf.Write(compressed)
	return buf.Bytes(), stats, nil
}

// Unpack reverses Pack: it reads the stub header and decompresses the
// payload back into the original PE image bytes.
func Unpack(wrapped []byte) ([]byte, error) {
	var s stub
	r := bytes.NewReader(wrapped)
	if err := binary.Read(r, binary.LittleEndian, &s); err != nil {
		return nil, fmt.Errorf("pewrap: reading stub: %w", err)
	}
	if s.Magic != magic {
		return nil, fmt.Errorf("pewrap: bad magic %q", s.Magic)
	}
	if s.Version != stubVersion {
		return nil, fmt.Errorf("pewrap: unsupported stub version %d", s.Version)
	}

	compressed := wrapped[binary.Size(s):]
	if uint32(len(compressed)) < s.CompressedSize {
		return nil, fmt.Errorf("pewrap: truncated payload: have %d bytes, stub promises %d", len(compressed), s.CompressedSize)
	}
	compressed = compressed[:s.CompressedSize]

	return pelza.Decompress(compressed, int(s.OriginalSize))
}

// optionalHeaderFields pulls the two fields pewrap threads through the
// stub out of whichever OptionalHeader variant f carries.
func optionalHeaderFields(f *pe.File) (entryPoint uint32, imageBase uint64) {
	switch oh := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		return oh.AddressOfEntryPoint, uint64(oh.ImageBase)
	case *pe.OptionalHeader64:
		return oh.AddressOfEntryPoint, oh.ImageBase
	default:
		return 0, 0
	}
}
