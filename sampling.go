package tex

// Filter selects how a texture is sampled when minified or magnified.
type Filter uint8

const (
	// FilterNearest samples the nearest texel.
	FilterNearest Filter = iota

	// FilterLinear interpolates between texels.
	FilterLinear

	// FilterNearestMipNearest samples the nearest texel in the nearest mip.
	FilterNearestMipNearest

	// FilterNearestMipLinear samples the nearest texel, blending mips.
	FilterNearestMipLinear

	// FilterLinearMipNearest interpolates texels in the nearest mip.
	FilterLinearMipNearest

	// FilterLinearMipLinear is full trilinear filtering.
	FilterLinearMipLinear
)

// Address selects wrapping behavior for texture coordinates outside [0,1].
type Address uint8

const (
	// AddressRepeat tiles the texture.
	AddressRepeat Address = iota

	// AddressClampToEdge clamps to the edge texel.
	AddressClampToEdge

	// AddressMirroredRepeat tiles with alternating mirroring.
	AddressMirroredRepeat
)

// CompareFunc is the comparison applied when compare-on-read is enabled
// (shadow sampling).
type CompareFunc uint8

const (
	// CompareNever always fails.
	CompareNever CompareFunc = iota

	// CompareLess passes if the reference is less than the sample.
	CompareLess

	// CompareEqual passes on equality.
	CompareEqual

	// CompareLessEqual passes if less than or equal.
	CompareLessEqual

	// CompareGreater passes if greater.
	CompareGreater

	// CompareNotEqual passes on inequality.
	CompareNotEqual

	// CompareGreaterEqual passes if greater than or equal.
	CompareGreaterEqual

	// CompareAlways always passes.
	CompareAlways
)

// PropertyFlag identifies which sampling property changed when the
// entity notifies its GPU implementation. Flags combine with bitwise OR.
type PropertyFlag uint32

const (
	// FlagMinFilter marks a minification filter change.
	FlagMinFilter PropertyFlag = 1 << iota

	// FlagMagFilter marks a magnification filter change.
	FlagMagFilter

	// FlagAddressU marks a U axis address mode change.
	FlagAddressU

	// FlagAddressV marks a V axis address mode change.
	FlagAddressV

	// FlagAddressW marks a W axis address mode change.
	FlagAddressW

	// FlagAnisotropy marks an anisotropy level change.
	FlagAnisotropy

	// FlagCompare marks a compare-on-read or compare function change.
	FlagCompare

	// FlagMipmaps marks a mipmap-generation flag change.
	FlagMipmaps

	// FlagAll marks every sampling property as changed, used on context
	// restore so the backend rebuilds its sampler state from scratch.
	FlagAll PropertyFlag = (1 << iota) - 1
)

// samplerState is the mutable sampling/addressing state of a Texture.
type samplerState struct {
	minFilter  Filter
	magFilter  Filter
	addressU   Address
	addressV   Address
	addressW   Address
	anisotropy int
	compare    bool
	compareFn  CompareFunc
	mipmaps    bool
}

// defaultSamplerState matches the conventional engine defaults:
// trilinear filtering, repeat addressing, mipmaps on.
func defaultSamplerState() samplerState {
	return samplerState{
		minFilter:  FilterLinearMipLinear,
		magFilter:  FilterLinear,
		addressU:   AddressRepeat,
		addressV:   AddressRepeat,
		addressW:   AddressRepeat,
		anisotropy: 1,
		mipmaps:    true,
	}
}

// Sampler key field layout. Widths cover the full constant ranges so
// distinct states always produce distinct keys.
var (
	keyMinFilter  = Field{Shift: 0, Width: 3}
	keyMagFilter  = Field{Shift: 3, Width: 1}
	keyAddressU   = Field{Shift: 4, Width: 2}
	keyAddressV   = Field{Shift: 6, Width: 2}
	keyAddressW   = Field{Shift: 8, Width: 2}
	keyAnisotropy = Field{Shift: 10, Width: 5}
	keyCompare    = Field{Shift: 15, Width: 1}
	keyCompareFn  = Field{Shift: 16, Width: 3}
	keyMipmaps    = Field{Shift: 19, Width: 1}
)

// key packs the state into a single word so backends can dedup native
// sampler objects by comparing keys.
func (s *samplerState) key() BitField {
	var b BitField
	b.Set(keyMinFilter, uint32(s.minFilter))
	b.Set(keyMagFilter, uint32(s.magFilter))
	b.Set(keyAddressU, uint32(s.addressU))
	b.Set(keyAddressV, uint32(s.addressV))
	b.Set(keyAddressW, uint32(s.addressW))
	b.Set(keyAnisotropy, uint32(s.anisotropy)) //nolint:gosec // clamped to [1,32]
	b.SetBool(keyCompare, s.compare)
	b.Set(keyCompareFn, uint32(s.compareFn))
	b.SetBool(keyMipmaps, s.mipmaps)
	return b
}

// Type classifies how level data is to be interpreted by shaders.
type Type uint8

const (
	// TypeDefault is plain color data.
	TypeDefault Type = iota

	// TypeRGBM is HDR color with a shared multiplier in alpha.
	TypeRGBM

	// TypeRGBE is HDR color with a shared exponent in alpha.
	TypeRGBE

	// TypeRGBP is HDR color with reciprocal-scaled alpha.
	TypeRGBP

	// TypeSwizzledGGGR is a two-channel normal map swizzle.
	TypeSwizzledGGGR
)

// Encoding is the read-only color encoding derived from a texture's
// type and format.
type Encoding uint8

const (
	// EncodingLinear is linear color.
	EncodingLinear Encoding = iota

	// EncodingSRGB is sRGB transfer encoded color.
	EncodingSRGB

	// EncodingRGBM is RGBM packed HDR.
	EncodingRGBM

	// EncodingRGBE is RGBE packed HDR.
	EncodingRGBE

	// EncodingRGBP is RGBP packed HDR.
	EncodingRGBP
)

// encodingFor derives the encoding from type and format. Type wins over
// format: a packed HDR texture stays packed even in an sRGB-capable
// format.
func encodingFor(typ Type, format PixelFormat) Encoding {
	switch typ {
	case TypeRGBM:
		return EncodingRGBM
	case TypeRGBE:
		return EncodingRGBE
	case TypeRGBP:
		return EncodingRGBP
	}
	if format.IsSRGB() {
		return EncodingSRGB
	}
	return EncodingLinear
}
