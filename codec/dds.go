package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/gogpu/tex"
)

// ddsMagic is "DDS " as a little-endian word.
const ddsMagic = 0x20534444

// ddsHeaderBytes covers the magic plus the 124-byte DDS_HEADER.
const ddsHeaderBytes = 128

// fourCC packs a four-character code the way DDS headers store it.
func fourCC(s string) uint32 {
	return uint32(s[0]) | uint32(s[1])<<8 | uint32(s[2])<<16 | uint32(s[3])<<24
}

// ddsCubemapCaps2 is DDSCAPS2_CUBEMAP plus all six face bits. Files that
// set only a subset of faces are treated as 2D, matching the common
// exporter behavior of writing either all faces or none.
const ddsCubemapCaps2 = 0xFE00

// ddsPlaceholderSize is the edge length of the gray image substituted
// for an unrecognized DDS variant.
const ddsPlaceholderSize = 4

// ddsMaxDimension bounds the header dimensions. The level walk computes
// byte sizes from them, so a hostile header must not be able to overflow
// that arithmetic.
const ddsMaxDimension = 1 << 16

// DecodeDDS decodes a legacy DDS container (DX9-era header, no DX10
// extension block). Level payloads alias the input buffer.
//
// An unrecognized pixel format does not fail outright: the decoder
// returns a small gray placeholder image together with a non-nil error,
// so a scene load can continue while the bad asset is reported.
func DecodeDDS(data []byte) (*tex.DecodedImage, error) {
	if !isDDS(data) {
		return nil, errors.Wrap(ErrFormat, "dds: bad magic")
	}
	if len(data) < ddsHeaderBytes {
		return nil, errors.Wrap(ErrCorrupt, "dds: truncated header")
	}

	var (
		height  = int(u32(data, 3))
		width   = int(u32(data, 4))
		mips    = int(u32(data, 7))
		pfFlags = u32(data, 20)
		fcc     = u32(data, 21)
		bpp     = int(u32(data, 22))
		caps2   = u32(data, 28)
	)

	if width <= 0 || height <= 0 || width > ddsMaxDimension || height > ddsMaxDimension {
		return nil, errors.Wrapf(ErrFormat, "dds: invalid dimensions %dx%d", width, height)
	}
	if mips < 1 {
		mips = 1
	}
	if mips > tex.MipCount(width, height) {
		return nil, errors.Wrapf(ErrCorrupt, "dds: %d mip levels for %dx%d", mips, width, height)
	}

	const ddpfFourCC = 4

	var (
		format tex.PixelFormat
		known  = true
	)
	switch {
	case pfFlags&ddpfFourCC != 0:
		switch fcc {
		case fourCC("DXT1"):
			format = tex.FormatDXT1
		case fourCC("DXT5"):
			format = tex.FormatDXT5
		case fourCC("ETC1"):
			format = tex.FormatETC1
		case fourCC("PTC2"):
			format = tex.FormatPVRTC2RGBA
		case fourCC("PTC4"):
			format = tex.FormatPVRTC4RGBA
		case 113: // D3DFMT_A16B16G16R16F
			format = tex.FormatRGBA16F
		case 116: // D3DFMT_A32B32G32R32F
			format = tex.FormatRGBA32F
		default:
			known = false
		}
	case bpp == 32:
		format = tex.FormatRGBA8
	default:
		known = false
	}

	if !known {
		return ddsPlaceholder(), errors.Wrapf(ErrUnsupported,
			"dds: unrecognized pixel format (fourcc %#x, %d bpp)", fcc, bpp)
	}

	faceCount := 1
	if caps2 == ddsCubemapCaps2 {
		faceCount = tex.CubeFaceCount
	}

	// Faces are stored outermost, each with its full mip chain.
	levels := make([][][]byte, mips)
	for mip := range levels {
		levels[mip] = make([][]byte, faceCount)
	}

	offset := ddsHeaderBytes
	for face := 0; face < faceCount; face++ {
		w, h := width, height
		for mip := 0; mip < mips; mip++ {
			end := offset + format.LevelByteSize(w, h)
			if end > len(data) {
				return nil, errors.Wrapf(ErrCorrupt, "dds: truncated at face %d level %d", face, mip)
			}
			levels[mip][face] = data[offset:end:end]
			offset = end
			w = tex.MipDimension(width, mip+1)
			h = tex.MipDimension(height, mip+1)
		}
	}

	img := &tex.DecodedImage{
		Format:  format,
		Width:   width,
		Height:  height,
		Cubemap: faceCount == tex.CubeFaceCount,
		Levels:  levels,
	}
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	return img, nil
}

// ddsPlaceholder builds the mid-gray stand-in image.
func ddsPlaceholder() *tex.DecodedImage {
	pixels := make([]byte, ddsPlaceholderSize*ddsPlaceholderSize*4)
	for i := 0; i < len(pixels); i += 4 {
		pixels[i+0] = 128
		pixels[i+1] = 128
		pixels[i+2] = 128
		pixels[i+3] = 255
	}
	return &tex.DecodedImage{
		Format: tex.FormatRGBA8,
		Width:  ddsPlaceholderSize,
		Height: ddsPlaceholderSize,
		Levels: [][][]byte{{pixels}},
	}
}
