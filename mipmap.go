package tex

import (
	"image"

	"golang.org/x/image/draw"
)

// mipChain builds a CPU mip chain for an image source by repeated
// half-resolution downscaling. The returned slice starts at level 1
// (level 0 is the source itself). Used for uncompressed image sources
// when mipmaps are enabled; compressed payloads always ship their mips
// inside the container.
func mipChain(src image.Image, levels int) []image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	chain := make([]image.Image, 0, levels-1)
	prev := src
	for level := 1; level < levels; level++ {
		mw := MipDimension(w, level)
		mh := MipDimension(h, level)
		dst := image.NewRGBA(image.Rect(0, 0, mw, mh))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), prev, prev.Bounds(), draw.Src, nil)
		chain = append(chain, dst)
		prev = dst
	}
	return chain
}
