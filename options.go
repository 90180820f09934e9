package tex

// Option configures a Texture during creation.
// Use functional options to customize texture behavior.
//
// Example:
//
//	// 2D render target
//	t := tex.New(device,
//	    tex.WithName("bloom_rt"),
//	    tex.WithSize(512, 512),
//	    tex.WithFormat(tex.FormatRGBA16F),
//	    tex.WithRenderTarget(),
//	)
//
//	// From a decoded container
//	t := tex.New(device, tex.WithName("skybox"), tex.WithImage(img))
type Option func(*textureOptions)

// textureOptions holds optional configuration for texture creation.
type textureOptions struct {
	name         string
	width        int
	height       int
	depth        int
	arrayLength  int
	format       PixelFormat
	typ          Type
	category     VRAMCategory
	cubemap      bool
	volume       bool
	renderTarget bool
	mipmaps      *bool
	image        *DecodedImage
	levels       [][][]byte
}

// defaultTextureOptions returns the defaults: a 4x4 RGBA8 asset texture.
// The 4x4 size is the deferred placeholder every texture starts from
// when no level data is supplied.
func defaultTextureOptions() textureOptions {
	return textureOptions{
		width:  4,
		height: 4,
		depth:  1,
		format: FormatRGBA8,
	}
}

// WithName sets the human-readable texture name used in logs and
// profiling output.
func WithName(name string) Option {
	return func(o *textureOptions) { o.name = name }
}

// WithSize sets the level 0 dimensions.
func WithSize(width, height int) Option {
	return func(o *textureOptions) {
		o.width = width
		o.height = height
	}
}

// WithFormat sets the pixel format. The format is immutable after
// construction.
func WithFormat(format PixelFormat) Option {
	return func(o *textureOptions) { o.format = format }
}

// WithType sets the type/encoding classification (RGBM, RGBE, ...).
func WithType(typ Type) Option {
	return func(o *textureOptions) { o.typ = typ }
}

// WithCategory attributes the texture's VRAM footprint to a profiler
// category. Defaults to CategoryAsset.
func WithCategory(category VRAMCategory) Option {
	return func(o *textureOptions) { o.category = category }
}

// WithCubemap marks the texture as a six-face cubemap.
func WithCubemap() Option {
	return func(o *textureOptions) { o.cubemap = true }
}

// WithVolume marks the texture as a 3D volume with the given depth.
// Requires device support for volume textures.
func WithVolume(depth int) Option {
	return func(o *textureOptions) {
		o.volume = true
		o.depth = depth
	}
}

// WithArrayLength makes the texture a texture array of the given length.
func WithArrayLength(n int) Option {
	return func(o *textureOptions) { o.arrayLength = n }
}

// WithRenderTarget marks the texture as render-target backed, which
// permits Resize.
func WithRenderTarget() Option {
	return func(o *textureOptions) { o.renderTarget = true }
}

// WithMipmaps enables or disables mipmap generation. Defaults to
// enabled, except for RGBE textures where box-filtering the shared
// exponent is invalid.
func WithMipmaps(enabled bool) Option {
	return func(o *textureOptions) { o.mipmaps = &enabled }
}

// WithImage adopts a decoder's output as the texture's format,
// dimensions, cubemap flag and initial level data. Construction
// triggers an immediate upload.
func WithImage(img *DecodedImage) Option {
	return func(o *textureOptions) { o.image = img }
}

// WithLevels supplies raw initial level data, [mip][face]. The face
// dimension must match the cubemap flag (1 or 6 entries).
func WithLevels(levels [][][]byte) Option {
	return func(o *textureOptions) { o.levels = levels }
}
