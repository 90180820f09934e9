package tex

// BitField packs small unsigned integer and boolean fields into a single
// 32-bit word using shift+mask. It backs the compact descriptor keys used
// by pipeline-state objects and by Texture.SamplerKey, where backends
// dedup native state objects by comparing a single word.
//
// Fields are described by a Field (shift and width); overlapping fields
// are the caller's responsibility to avoid.
type BitField uint32

// Field describes the position of one value inside a BitField word.
type Field struct {
	// Shift is the bit offset of the field's least significant bit.
	Shift uint

	// Width is the field size in bits (1..32).
	Width uint
}

// mask returns the field's mask in place (already shifted).
func (f Field) mask() uint32 {
	return ((1 << f.Width) - 1) << f.Shift
}

// Get extracts the field's value from the word.
func (b BitField) Get(f Field) uint32 {
	return (uint32(b) & f.mask()) >> f.Shift
}

// Set stores v into the field, truncating v to the field width.
func (b *BitField) Set(f Field, v uint32) {
	*b = BitField((uint32(*b) &^ f.mask()) | ((v << f.Shift) & f.mask()))
}

// Bool extracts a single-bit field as a boolean.
func (b BitField) Bool(f Field) bool {
	return b.Get(f) != 0
}

// SetBool stores a boolean into a single-bit field.
func (b *BitField) SetBool(f Field, v bool) {
	if v {
		b.Set(f, 1)
	} else {
		b.Set(f, 0)
	}
}
