package codec

import (
	"github.com/cockroachdb/errors"

	"github.com/gogpu/tex"
)

// KTX v1 identifier, read as three little-endian words:
// 0xAB 'K' 'T' 'X' ' ' '1' '1' 0xBB 0x0D 0x0A 0x1A 0x0A.
const (
	ktxIdentifier0 = 0x58544BAB
	ktxIdentifier1 = 0xBB313120
	ktxIdentifier2 = 0x0A1A0A0D
)

// ktxLittleEndian is the endianness marker written by little-endian
// producers. Big-endian files are not supported.
const ktxLittleEndian = 0x04030201

// ktxHeaderWords is the 13-field header following the 12-byte identifier.
const ktxHeaderWords = 13

// ktxMaxDimension bounds the header dimensions; together with the mip
// count check it keeps a hostile header from sizing allocations.
const ktxMaxDimension = 1 << 16

// ktxFormats maps glInternalFormat codes to engine pixel formats. An
// internal format outside this table is a hard failure.
var ktxFormats = map[uint32]tex.PixelFormat{
	// Block-compressed
	0x83F0: tex.FormatDXT1, // COMPRESSED_RGB_S3TC_DXT1
	0x83F1: tex.FormatDXT1, // COMPRESSED_RGBA_S3TC_DXT1
	0x83F2: tex.FormatDXT3,
	0x83F3: tex.FormatDXT5,
	0x8D64: tex.FormatETC1,
	0x9274: tex.FormatETC2RGB,
	0x9278: tex.FormatETC2RGBA,
	0x8C00: tex.FormatPVRTC4RGB,
	0x8C01: tex.FormatPVRTC2RGB,
	0x8C02: tex.FormatPVRTC4RGBA,
	0x8C03: tex.FormatPVRTC2RGBA,
	0x93B0: tex.FormatASTC4x4,

	// Uncompressed
	0x8051: tex.FormatRGB8,    // GL_RGB8
	0x8058: tex.FormatRGBA8,   // GL_RGBA8
	0x8C41: tex.FormatSRGB8,   // GL_SRGB8
	0x8C43: tex.FormatSRGBA8,  // GL_SRGB8_ALPHA8
	0x8C3A: tex.Format111110F, // GL_R11F_G11F_B10F
	0x881B: tex.FormatRGB16F,  // GL_RGB16F
	0x881A: tex.FormatRGBA16F, // GL_RGBA16F
	0x8814: tex.FormatRGBA32F, // GL_RGBA32F
}

// DecodeKTX decodes a KTX v1 container. Level payloads alias the input
// buffer without copying; the packed 11/11/10 float format's payload is
// word data viewed through the same byte slice.
//
// Volume textures (pixelDepth > 1) and texture arrays are out of scope
// and fail with ErrUnsupported.
func DecodeKTX(data []byte) (*tex.DecodedImage, error) {
	if !isKTX(data) {
		return nil, errors.Wrap(ErrFormat, "ktx: bad identifier")
	}
	if len(data) < (3+ktxHeaderWords)*4 {
		return nil, errors.Wrap(ErrCorrupt, "ktx: truncated header")
	}

	var (
		endianness     = u32(data, 3)
		internalFormat = u32(data, 7)
		width          = int(u32(data, 9))
		height         = int(u32(data, 10))
		depth          = int(u32(data, 11))
		arrayElements  = int(u32(data, 12))
		faceCount      = int(u32(data, 13))
		mipLevels      = int(u32(data, 14))
		keyValueBytes  = int(u32(data, 15))
	)

	if endianness != ktxLittleEndian {
		return nil, errors.Wrap(ErrUnsupported, "ktx: big-endian container")
	}
	if depth > 1 {
		return nil, errors.Wrapf(ErrUnsupported, "ktx: volume texture (depth %d)", depth)
	}
	if arrayElements != 0 {
		return nil, errors.Wrapf(ErrUnsupported, "ktx: texture array (%d elements)", arrayElements)
	}
	if faceCount != 1 && faceCount != tex.CubeFaceCount {
		return nil, errors.Wrapf(ErrFormat, "ktx: invalid face count %d", faceCount)
	}
	if width <= 0 || height <= 0 || width > ktxMaxDimension || height > ktxMaxDimension {
		return nil, errors.Wrapf(ErrFormat, "ktx: invalid dimensions %dx%d", width, height)
	}

	format, ok := ktxFormats[internalFormat]
	if !ok {
		return nil, errors.Wrapf(ErrFormat, "ktx: unrecognized internal format %#x", internalFormat)
	}

	// Mipmap count 0 means a single level the consumer may generate from.
	if mipLevels < 1 {
		mipLevels = 1
	}
	if mipLevels > tex.MipCount(width, height) {
		return nil, errors.Wrapf(ErrCorrupt, "ktx: %d mip levels for %dx%d", mipLevels, width, height)
	}

	cubemap := faceCount == tex.CubeFaceCount
	levels := make([][][]byte, mipLevels)

	// Level data starts after identifier, header and key/value block.
	offset := 3 + ktxHeaderWords + keyValueBytes/4
	for mip := 0; mip < mipLevels; mip++ {
		if (offset+1)*4 > len(data) {
			return nil, errors.Wrapf(ErrCorrupt, "ktx: truncated at level %d", mip)
		}
		imageSize := int(u32(data, offset))
		offset++

		levels[mip] = make([][]byte, faceCount)
		for face := 0; face < faceCount; face++ {
			begin := offset * 4
			end := begin + imageSize
			if imageSize < 0 || end > len(data) {
				return nil, errors.Wrapf(ErrCorrupt, "ktx: truncated at level %d face %d", mip, face)
			}
			levels[mip][face] = data[begin:end:end]
			// Faces are padded to a 4-byte boundary regardless of the
			// declared byte size.
			offset += (imageSize + 3) >> 2
		}
	}

	img := &tex.DecodedImage{
		Format:  format,
		Width:   width,
		Height:  height,
		Cubemap: cubemap,
		Levels:  levels,
	}
	if err := img.Validate(); err != nil {
		return nil, errors.Wrap(ErrCorrupt, err.Error())
	}
	return img, nil
}
