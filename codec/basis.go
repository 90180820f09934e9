package codec

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/gogpu/tex"
)

// Basis file signature, "sB" in the first two bytes.
const (
	basisSig0 = 0x73
	basisSig1 = 0x42
)

// Transcoder converts Basis supercompressed data into one of the
// block-compressed formats the device can sample, or into RGBA8 when
// nothing better is available. Implementations wrap the reference
// transcoder; this package ships none.
type Transcoder interface {
	// Transcode decodes the container and transcodes every level to
	// target, which is one of the formats chooseBasisTarget can return.
	Transcode(data []byte, target tex.PixelFormat) (*tex.DecodedImage, error)
}

var (
	transcoderMu sync.RWMutex
	transcoder   Transcoder
)

// RegisterTranscoder installs the Basis transcoder used by DecodeBasis.
// Passing nil removes the current one. Typically called from an init
// function of the package that binds the native transcoder.
func RegisterTranscoder(t Transcoder) {
	transcoderMu.Lock()
	transcoder = t
	transcoderMu.Unlock()
}

// chooseBasisTarget ranks the device's compressed-format support and
// picks the transcode target. ASTC wins on quality, then DXT, ETC2 and
// PVRTC; a device with none of them gets plain RGBA8.
func chooseBasisTarget(caps tex.Capabilities) tex.PixelFormat {
	switch {
	case caps.SupportsASTC:
		return tex.FormatASTC4x4
	case caps.SupportsDXT:
		return tex.FormatDXT5
	case caps.SupportsETC:
		return tex.FormatETC2RGBA
	case caps.SupportsPVRTC:
		return tex.FormatPVRTC4RGBA
	}
	return tex.FormatRGBA8
}

// DecodeBasis transcodes a Basis container through the registered
// Transcoder, targeting the best format caps advertises. Without a
// registered transcoder the call fails with ErrUnsupported.
func DecodeBasis(data []byte, caps tex.Capabilities) (*tex.DecodedImage, error) {
	if !isBasis(data) {
		return nil, errors.Wrap(ErrFormat, "basis: bad signature")
	}

	transcoderMu.RLock()
	t := transcoder
	transcoderMu.RUnlock()
	if t == nil {
		return nil, errors.Wrap(ErrUnsupported, "basis: no transcoder registered")
	}

	img, err := t.Transcode(data, chooseBasisTarget(caps))
	if err != nil {
		return nil, errors.Wrap(err, "basis: transcode")
	}
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	return img, nil
}
