package tex

import "fmt"

// PixelFormat identifies the storage layout of texture level data.
//
// The set covers the formats producible by the container decoders
// (block-compressed families, uncompressed 8-bit, half/float) plus the
// sized formats render targets use.
type PixelFormat uint8

const (
	// FormatA8 is 8-bit alpha.
	FormatA8 PixelFormat = iota

	// FormatL8 is 8-bit luminance.
	FormatL8

	// FormatLA8 is 8-bit luminance with 8-bit alpha.
	FormatLA8

	// FormatRGB565 is 16-bit packed RGB.
	FormatRGB565

	// FormatRGBA5551 is 16-bit packed RGBA with 1-bit alpha.
	FormatRGBA5551

	// FormatRGBA4 is 16-bit packed RGBA, 4 bits per channel.
	FormatRGBA4

	// FormatRGB8 is 24-bit RGB, 8 bits per channel.
	FormatRGB8

	// FormatRGBA8 is 32-bit RGBA, 8 bits per channel.
	FormatRGBA8

	// FormatBGRA8 is 32-bit BGRA, often used for surface presentation.
	FormatBGRA8

	// FormatDXT1 is BC1 block compression (8 bytes per 4x4 block).
	FormatDXT1

	// FormatDXT3 is BC2 block compression (16 bytes per 4x4 block).
	FormatDXT3

	// FormatDXT5 is BC3 block compression (16 bytes per 4x4 block).
	FormatDXT5

	// FormatETC1 is ETC1 block compression (8 bytes per 4x4 block).
	FormatETC1

	// FormatETC2RGB is ETC2 RGB block compression.
	FormatETC2RGB

	// FormatETC2RGBA is ETC2 RGBA block compression.
	FormatETC2RGBA

	// FormatPVRTC2RGB is PVRTC 2 bits-per-pixel RGB.
	FormatPVRTC2RGB

	// FormatPVRTC2RGBA is PVRTC 2 bits-per-pixel RGBA.
	FormatPVRTC2RGBA

	// FormatPVRTC4RGB is PVRTC 4 bits-per-pixel RGB.
	FormatPVRTC4RGB

	// FormatPVRTC4RGBA is PVRTC 4 bits-per-pixel RGBA.
	FormatPVRTC4RGBA

	// FormatASTC4x4 is ASTC with a 4x4 block footprint (16 bytes per block).
	FormatASTC4x4

	// FormatATCRGB is AMD ATC RGB block compression.
	FormatATCRGB

	// FormatATCRGBA is AMD ATC RGBA block compression.
	FormatATCRGBA

	// FormatRGB16F is 16-bit float per channel RGB.
	FormatRGB16F

	// FormatRGBA16F is 16-bit float per channel RGBA.
	FormatRGBA16F

	// FormatRGB32F is 32-bit float per channel RGB.
	FormatRGB32F

	// FormatRGBA32F is 32-bit float per channel RGBA.
	FormatRGBA32F

	// FormatR32F is single-channel 32-bit float.
	FormatR32F

	// Format111110F is packed 11/11/10-bit float RGB in one 32-bit word.
	Format111110F

	// FormatSRGB8 is 24-bit RGB with sRGB transfer encoding.
	FormatSRGB8

	// FormatSRGBA8 is 32-bit RGBA with sRGB transfer encoding.
	FormatSRGBA8

	// FormatDepth is a depth render buffer format.
	FormatDepth

	// FormatDepthStencil is a packed depth+stencil render buffer format.
	FormatDepthStencil

	// FormatR8I is single-channel 8-bit signed integer.
	FormatR8I

	// FormatR8U is single-channel 8-bit unsigned integer.
	FormatR8U

	// FormatR16I is single-channel 16-bit signed integer.
	FormatR16I

	// FormatR16U is single-channel 16-bit unsigned integer.
	FormatR16U

	// FormatR32I is single-channel 32-bit signed integer.
	FormatR32I

	// FormatR32U is single-channel 32-bit unsigned integer.
	FormatR32U
)

var formatNames = map[PixelFormat]string{
	FormatA8:           "A8",
	FormatL8:           "L8",
	FormatLA8:          "LA8",
	FormatRGB565:       "RGB565",
	FormatRGBA5551:     "RGBA5551",
	FormatRGBA4:        "RGBA4",
	FormatRGB8:         "RGB8",
	FormatRGBA8:        "RGBA8",
	FormatBGRA8:        "BGRA8",
	FormatDXT1:         "DXT1",
	FormatDXT3:         "DXT3",
	FormatDXT5:         "DXT5",
	FormatETC1:         "ETC1",
	FormatETC2RGB:      "ETC2_RGB",
	FormatETC2RGBA:     "ETC2_RGBA",
	FormatPVRTC2RGB:    "PVRTC_2BPP_RGB",
	FormatPVRTC2RGBA:   "PVRTC_2BPP_RGBA",
	FormatPVRTC4RGB:    "PVRTC_4BPP_RGB",
	FormatPVRTC4RGBA:   "PVRTC_4BPP_RGBA",
	FormatASTC4x4:      "ASTC_4x4",
	FormatATCRGB:       "ATC_RGB",
	FormatATCRGBA:      "ATC_RGBA",
	FormatRGB16F:       "RGB16F",
	FormatRGBA16F:      "RGBA16F",
	FormatRGB32F:       "RGB32F",
	FormatRGBA32F:      "RGBA32F",
	FormatR32F:         "R32F",
	Format111110F:      "111110F",
	FormatSRGB8:        "SRGB8",
	FormatSRGBA8:       "SRGBA8",
	FormatDepth:        "DEPTH",
	FormatDepthStencil: "DEPTHSTENCIL",
	FormatR8I:          "R8I",
	FormatR8U:          "R8U",
	FormatR16I:         "R16I",
	FormatR16U:         "R16U",
	FormatR32I:         "R32I",
	FormatR32U:         "R32U",
}

// String returns a human-readable name for the format.
func (f PixelFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", uint8(f))
}

// IsCompressed reports whether the format is block-compressed.
// Compressed formats cannot be locked for per-pixel access and are
// excluded from single-level mipmap accounting.
func (f PixelFormat) IsCompressed() bool {
	switch f {
	case FormatDXT1, FormatDXT3, FormatDXT5,
		FormatETC1, FormatETC2RGB, FormatETC2RGBA,
		FormatPVRTC2RGB, FormatPVRTC2RGBA, FormatPVRTC4RGB, FormatPVRTC4RGBA,
		FormatASTC4x4, FormatATCRGB, FormatATCRGBA:
		return true
	}
	return false
}

// IsIntegerFormat reports whether the format stores unnormalized
// integers. Integer formats are not filterable.
func (f PixelFormat) IsIntegerFormat() bool {
	switch f {
	case FormatR8I, FormatR8U, FormatR16I, FormatR16U, FormatR32I, FormatR32U:
		return true
	}
	return false
}

// IsSRGB reports whether the format carries sRGB transfer encoding.
func (f PixelFormat) IsSRGB() bool {
	return f == FormatSRGB8 || f == FormatSRGBA8
}

// BytesPerPixel returns the per-pixel byte size for uncompressed formats,
// or 0 for block-compressed formats (use LevelByteSize instead).
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case FormatA8, FormatL8, FormatR8I, FormatR8U:
		return 1
	case FormatLA8, FormatRGB565, FormatRGBA5551, FormatRGBA4, FormatR16I, FormatR16U:
		return 2
	case FormatRGB8, FormatSRGB8:
		return 3
	case FormatRGBA8, FormatBGRA8, FormatSRGBA8, FormatR32F, Format111110F,
		FormatDepth, FormatDepthStencil, FormatR32I, FormatR32U:
		return 4
	case FormatRGB16F:
		return 6
	case FormatRGBA16F:
		return 8
	case FormatRGB32F:
		return 12
	case FormatRGBA32F:
		return 16
	}
	return 0
}

// ComponentSize returns the byte size of one component as it travels
// through an upload payload: 1 for 8-bit data, 2 for half-float, 4 for
// full-float. Block-compressed formats report 1 (payloads are opaque
// byte streams).
func (f PixelFormat) ComponentSize() int {
	switch f {
	case FormatRGB16F, FormatRGBA16F:
		return 2
	case FormatRGB32F, FormatRGBA32F, FormatR32F, FormatR32I, FormatR32U, Format111110F:
		return 4
	}
	return 1
}

// BlockSize returns the byte size of one compressed block, or 0 for
// uncompressed formats.
func (f PixelFormat) BlockSize() int {
	switch f {
	case FormatDXT1, FormatETC1, FormatETC2RGB, FormatATCRGB:
		return 8
	case FormatDXT3, FormatDXT5, FormatETC2RGBA, FormatASTC4x4, FormatATCRGBA:
		return 16
	}
	return 0
}

// LevelByteSize returns the exact byte size of one mip level of the
// given dimensions in this format. Each compression family has its own
// rule: DXT/ETC/ASTC/ATC use a 4x4 block grid, PVRTC uses
// dimension-clamped multiplicative formulas specific to its 2- and
// 4-bits-per-pixel variants, everything else is width*height*bpp.
func (f PixelFormat) LevelByteSize(width, height int) int {
	switch f {
	case FormatDXT1, FormatDXT3, FormatDXT5,
		FormatETC1, FormatETC2RGB, FormatETC2RGBA,
		FormatASTC4x4, FormatATCRGB, FormatATCRGBA:
		blocksX := (width + 3) / 4
		blocksY := (height + 3) / 4
		return blocksX * blocksY * f.BlockSize()
	case FormatPVRTC2RGB, FormatPVRTC2RGBA:
		return max(width, 16) * max(height, 8) / 4
	case FormatPVRTC4RGB, FormatPVRTC4RGBA:
		return max(width, 8) * max(height, 8) / 2
	}
	return width * height * f.BytesPerPixel()
}

// MipDimension returns the size of dimension base at the given mip
// level: max(1, floor(base/2^level)).
func MipDimension(base, level int) int {
	d := base >> level
	if d < 1 {
		return 1
	}
	return d
}

// MipCount returns the number of mip levels in a full chain for the
// given dimensions, down to 1x1 inclusive.
func MipCount(width, height int) int {
	count := 1
	for width > 1 || height > 1 {
		width = MipDimension(width, 1)
		height = MipDimension(height, 1)
		count++
	}
	return count
}

// IsPow2 reports whether d is a positive power of two.
func IsPow2(d int) bool {
	return d > 0 && d&(d-1) == 0
}
