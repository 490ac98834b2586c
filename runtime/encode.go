package hsdt

import "encoding/binary"

// Encode returns the canonical byte encoding of v, in a freshly allocated
// buffer sized exactly via EncodedSize. Encoding a well-formed Value (one
// whose NaNs, if any, already carry the canonical bit pattern and whose
// Map entries are already in strict canonical order) cannot fail; it is a
// pure function with no error return, matching the spec's "encoding cannot
// fail for well-formed Values" contract.
func Encode(v Value) []byte {
	buf := make([]byte, 0, EncodedSize(v))
	return appendValue(buf, v)
}

// EncodeAppend appends the canonical encoding of v to b and returns the
// extended slice, for callers that want to build up a buffer across
// multiple values (e.g. a pooled scratch buffer) without an intermediate
// allocation per value.
func EncodeAppend(b []byte, v Value) []byte {
	return appendValue(b, v)
}

func appendValue(b []byte, v Value) []byte {
	switch v.Kind {
	case KindNull:
		return append(b, byteNull)
	case KindTrue:
		return append(b, byteTrue)
	case KindFalse:
		return append(b, byteFalse)
	case KindFloat:
		return appendFloat(b, v.Float)
	case KindByteString:
		b = appendLength(b, majorByteString, uint64(len(v.Str)))
		return append(b, v.Str...)
	case KindUtf8String:
		return appendUtf8String(b, v.Str)
	case KindArray:
		b = appendLength(b, majorArray, uint64(len(v.Array)))
		for _, e := range v.Array {
			b = appendValue(b, e)
		}
		return b
	case KindMap:
		b = appendLength(b, majorMap, uint64(len(v.Entries)))
		for _, e := range v.Entries {
			b = appendUtf8String(b, e.Key)
			b = appendValue(b, e.Value)
		}
		return b
	default:
		return b
	}
}

func appendUtf8String(b []byte, s []byte) []byte {
	b = appendLength(b, majorUtf8String, uint64(len(s)))
	return append(b, s...)
}

func appendFloat(b []byte, f float64) []byte {
	bits := floatToBits(f)
	if isNaN(f) {
		bits = canonicalNaN
	}
	b = append(b, byteFloat, 0, 0, 0, 0, 0, 0, 0, 0)
	binary.BigEndian.PutUint64(b[len(b)-8:], bits)
	return b
}
