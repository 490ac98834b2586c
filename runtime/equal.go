package hsdt

import "bytes"

// Equal reports whether a and b are structurally equal. Values of
// different Kind are always unequal. Strings compare byte-wise. Floats
// treat all NaNs as equal to each other (a deliberate departure from IEEE
// 754 to satisfy the "structural" intent of the format — since a
// conforming decoder can only ever produce the single canonical NaN,
// treating all NaNs as equal is consistent rather than lossy); otherwise
// ordinary float equality applies, so +0.0 == -0.0. Arrays compare by
// length and pairwise equal elements in order. Maps compare by size and
// paired iteration in canonical order, requiring equal key bytes and equal
// values at every position.
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull, KindTrue, KindFalse:
		return true
	case KindByteString, KindUtf8String:
		return bytes.Equal(a.Str, b.Str)
	case KindFloat:
		if isNaN(a.Float) && isNaN(b.Float) {
			return true
		}
		return a.Float == b.Float
	case KindArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !Equal(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(a.Entries) != len(b.Entries) {
			return false
		}
		for i := range a.Entries {
			if !bytes.Equal(a.Entries[i].Key, b.Entries[i].Key) {
				return false
			}
			if !Equal(a.Entries[i].Value, b.Entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
