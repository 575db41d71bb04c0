// Package pelza compresses and decompresses buffers using an
// LZMA-family codec tuned for executable images: a byte-pair
// hash-chain match finder feeds a five-stream packet encoding, which
// is itself arithmetic-coded by a sliding-window adaptive binary
// model.
//
// The container format is byte-exact and platform independent: a
// little-endian 16-bit window size followed by the arithmetic-coded
// payload. See internal/container for the payload layout.
package pelza
