package codec

import "github.com/cockroachdb/errors"

// Decode errors. Every decoder failure wraps one of these three
// sentinels. They differ in message, not in recovery path: all are
// fatal to the decode call and the caller receives no usable image
// (except the documented DDS placeholder case).
var (
	// ErrFormat marks a container the decoders do not recognize or a
	// malformed header: bad magic bytes, an unknown internal format
	// code, an unreadable resolution line.
	ErrFormat = errors.New("codec: unrecognized or malformed container")

	// ErrUnsupported marks a valid container using a feature outside
	// this subsystem's scope: volume depth > 1, texture arrays, an
	// unsupported four-cc.
	ErrUnsupported = errors.New("codec: unsupported container feature")

	// ErrCorrupt marks level data that contradicts the container's own
	// header: scanline width mismatch, an RLE run overflowing the
	// declared width, a zero-length run, truncated payload.
	ErrCorrupt = errors.New("codec: corrupt level data")
)
