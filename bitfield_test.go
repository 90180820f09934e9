package tex

import "testing"

// TestBitFieldRoundTrip tests that values survive Set/Get across
// adjacent fields without bleeding into each other.
func TestBitFieldRoundTrip(t *testing.T) {
	fa := Field{Shift: 0, Width: 3}
	fb := Field{Shift: 3, Width: 5}
	fc := Field{Shift: 8, Width: 1}

	var b BitField
	b.Set(fa, 5)
	b.Set(fb, 31)
	b.SetBool(fc, true)

	if got := b.Get(fa); got != 5 {
		t.Errorf("Get(fa) = %d, want 5", got)
	}
	if got := b.Get(fb); got != 31 {
		t.Errorf("Get(fb) = %d, want 31", got)
	}
	if !b.Bool(fc) {
		t.Error("Bool(fc) = false, want true")
	}

	// Overwriting one field must not disturb its neighbors.
	b.Set(fb, 0)
	if got := b.Get(fa); got != 5 {
		t.Errorf("Get(fa) after neighbor write = %d, want 5", got)
	}
	if !b.Bool(fc) {
		t.Error("Bool(fc) after neighbor write = false, want true")
	}
}

// TestBitFieldTruncation tests that oversized values are truncated to
// the field width.
func TestBitFieldTruncation(t *testing.T) {
	f := Field{Shift: 4, Width: 2}

	var b BitField
	b.Set(f, 0xFF)
	if got := b.Get(f); got != 3 {
		t.Errorf("Get after oversized Set = %d, want 3", got)
	}
	if uint32(b) != 3<<4 {
		t.Errorf("word = %#x, want %#x", uint32(b), 3<<4)
	}
}

// TestBitFieldSetBoolFalse tests clearing a flag.
func TestBitFieldSetBoolFalse(t *testing.T) {
	f := Field{Shift: 7, Width: 1}

	var b BitField
	b.SetBool(f, true)
	b.SetBool(f, false)
	if b.Bool(f) {
		t.Error("Bool after SetBool(false) = true, want false")
	}
}
