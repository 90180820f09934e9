package codec

import (
	"bytes"
	"encoding/binary"
	"io"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/gzip"

	"github.com/gogpu/tex"
)

// Option configures a Decode call.
type Option func(*decodeOptions)

// decodeOptions holds optional configuration for decoding.
type decodeOptions struct {
	caps tex.Capabilities
}

// WithCapabilities supplies device capability flags, used by the Basis
// decoder to rank target formats. Without it Basis transcodes to RGBA8.
func WithCapabilities(caps tex.Capabilities) Option {
	return func(o *decodeOptions) { o.caps = caps }
}

// Decode sniffs the container format from its magic bytes and dispatches
// to the matching decoder. A buffer starting with the gzip magic is
// decompressed first and re-sniffed, so gzip-wrapped containers decode
// transparently.
//
// On failure the returned image is nil, with one exception: an
// unrecognized DDS variant returns a 4x4 placeholder image alongside a
// non-nil error, so callers can keep rendering while surfacing the
// problem.
func Decode(data []byte, opts ...Option) (*tex.DecodedImage, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}
	return decode(data, &o)
}

// DecodeNamed is Decode with an extension-based fallback: when the magic
// bytes match nothing, the file extension of name picks the decoder.
// Useful for containers whose header was sniffed away by a transport.
func DecodeNamed(name string, data []byte, opts ...Option) (*tex.DecodedImage, error) {
	var o decodeOptions
	for _, opt := range opts {
		opt(&o)
	}

	img, err := decode(data, &o)
	if err == nil || !errors.Is(err, ErrFormat) || img != nil {
		return img, err
	}

	base := strings.TrimSuffix(strings.ToLower(name), ".gz")
	switch path.Ext(base) {
	case ".ktx":
		return DecodeKTX(data)
	case ".dds":
		return DecodeDDS(data)
	case ".hdr":
		return DecodeHDR(data)
	case ".basis":
		return DecodeBasis(data, o.caps)
	}
	return nil, err
}

func decode(data []byte, o *decodeOptions) (*tex.DecodedImage, error) {
	if len(data) >= 2 && data[0] == 0x1F && data[1] == 0x8B {
		raw, err := gunzip(data)
		if err != nil {
			return nil, errors.Wrap(ErrCorrupt, "gzip wrapper")
		}
		data = raw
	}

	switch {
	case isKTX(data):
		return DecodeKTX(data)
	case isDDS(data):
		return DecodeDDS(data)
	case isHDR(data):
		return DecodeHDR(data)
	case isBasis(data):
		return DecodeBasis(data, o.caps)
	}
	return nil, errors.Wrap(ErrFormat, "no decoder matched magic bytes")
}

// gunzip decompresses a gzip-wrapped container.
func gunzip(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = zr.Close()
	}()
	return io.ReadAll(zr)
}

// isKTX reports whether data starts with the KTX v1 signature.
func isKTX(data []byte) bool {
	return len(data) >= 12 &&
		u32(data, 0) == ktxIdentifier0 &&
		u32(data, 1) == ktxIdentifier1 &&
		u32(data, 2) == ktxIdentifier2
}

// isDDS reports whether data starts with the "DDS " magic.
func isDDS(data []byte) bool {
	return len(data) >= 4 && u32(data, 0) == ddsMagic
}

// isHDR reports whether data starts with a Radiance magic token.
func isHDR(data []byte) bool {
	return bytes.HasPrefix(data, []byte(hdrMagicRadiance)) ||
		bytes.HasPrefix(data, []byte(hdrMagicRGBE))
}

// isBasis reports whether data starts with the Basis file signature.
func isBasis(data []byte) bool {
	return len(data) >= 2 && data[0] == basisSig0 && data[1] == basisSig1
}

// u32 reads the little-endian 32-bit word at the given word index.
func u32(data []byte, word int) uint32 {
	return binary.LittleEndian.Uint32(data[word*4:])
}
