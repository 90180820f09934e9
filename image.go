package tex

import "fmt"

// CubeFaceCount is the number of faces in a cubemap, in the order
// +X, -X, +Y, -Y, +Z, -Z established by the source containers.
const CubeFaceCount = 6

// DecodedImage is the normalized output of a container decoder and the
// construction input of a Texture. It is transient: a Texture built
// from it takes over the level payloads, which usually alias the source
// byte buffer (zero-copy slices).
//
// Levels is indexed [mip][face]. Level 0 is full resolution and each
// subsequent level is half resolution (floor, minimum 1). The face
// dimension has length 1 for 2D images and CubeFaceCount for cubemaps.
//
// A decoder never returns a partially populated DecodedImage: any
// failure yields a nil image and an error, and callers treat that as
// "texture did not load".
type DecodedImage struct {
	// Format is the storage layout of every level payload.
	Format PixelFormat

	// Width and Height are the level 0 dimensions.
	Width  int
	Height int

	// Cubemap reports whether each level carries six faces.
	Cubemap bool

	// Type hints how a texture built from this image should interpret
	// the payload. The Radiance decoder sets TypeRGBE; everything else
	// leaves TypeDefault.
	Type Type

	// Levels holds the mip payloads, [mip][face].
	Levels [][][]byte
}

// Faces returns the number of faces per level (1 or CubeFaceCount).
func (img *DecodedImage) Faces() int {
	if img.Cubemap {
		return CubeFaceCount
	}
	return 1
}

// Validate checks the structural invariants: positive dimensions, at
// least one level, contiguous levels each with the expected face count.
// Decoders call this before returning so a malformed result can never
// escape.
func (img *DecodedImage) Validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("tex: decoded image has invalid dimensions %dx%d", img.Width, img.Height)
	}
	if len(img.Levels) == 0 {
		return fmt.Errorf("tex: decoded image has no mip levels")
	}
	faces := img.Faces()
	for i, level := range img.Levels {
		if len(level) != faces {
			return fmt.Errorf("tex: decoded image level %d has %d faces, want %d", i, len(level), faces)
		}
		for f, data := range level {
			if data == nil {
				return fmt.Errorf("tex: decoded image level %d face %d is nil", i, f)
			}
		}
	}
	return nil
}

// String returns a short description for logging.
func (img *DecodedImage) String() string {
	kind := "2d"
	if img.Cubemap {
		kind = "cube"
	}
	return fmt.Sprintf("DecodedImage[%s %dx%d %v %d levels]",
		kind, img.Width, img.Height, img.Format, len(img.Levels))
}
