// Package compliance holds never-panic fuzzing and round-trip property
// tests exercising the decoder and encoder against arbitrary and
// structured inputs, independent of the fixed hex vectors in
// tests/vectors.
package compliance

import (
	"bytes"
	"testing"

	hsdt "github.com/hsdt-go/hsdt/runtime"
)

// FuzzDecodeNeverPanics feeds arbitrary bytes to Decode and requires only
// that it returns (a zero Value, some n, a non-nil error) or a usable
// value — never a panic, and never a negative/overrunning consumed count.
func FuzzDecodeNeverPanics(f *testing.F) {
	seeds := [][]byte{
		{0xf6},
		{0xf5},
		{0xf4},
		{0xfb, 0x3f, 0xf1, 0x99, 0x99, 0x99, 0x99, 0x99, 0x9a},
		{0x60},
		{0x64, 'I', 'E', 'T', 'F'},
		{0x80},
		{0xa0},
		{0xa1, 0x61, 'b', 0x61, 'c'},
		{0x81},
		{0x9a, 0x80, 0x00, 0x3f, 0x65, 0x81},
		{0x18, 0x18},
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, data []byte) {
		v, n, err := hsdt.Decode(data)
		if n < 0 || n > len(data) {
			t.Fatalf("consumed %d out of range for input of length %d", n, len(data))
		}
		if err != nil {
			return
		}
		// A successfully decoded value must re-encode to exactly the
		// consumed prefix (canonical form is unique).
		re := hsdt.Encode(v)
		if !bytes.Equal(re, data[:n]) {
			t.Fatalf("round trip mismatch: decoded %d bytes, re-encode = %x, original prefix = %x", n, re, data[:n])
		}
		if size := hsdt.EncodedSize(v); size != n {
			t.Fatalf("EncodedSize = %d, want %d", size, n)
		}
		if !hsdt.Equal(v, v) {
			t.Fatalf("Equal is not reflexive for decoded value of kind %v", v.Kind)
		}
	})
}

// FuzzEncodeDecodeRoundTrip builds a Value from fuzzer-supplied primitives
// (by walking a small deterministic grammar over the raw bytes) and
// checks that Encode followed by Decode reproduces a structurally equal
// Value consuming every byte.
func FuzzEncodeDecodeRoundTrip(f *testing.F) {
	f.Add([]byte("hello"), int64(0), uint8(0))
	f.Add([]byte{}, int64(1), uint8(1))
	f.Add([]byte{0, 1, 2, 3}, int64(-7), uint8(2))
	f.Fuzz(func(t *testing.T, raw []byte, n int64, kindSel uint8) {
		v := buildValue(raw, n, kindSel, 0)
		enc := hsdt.Encode(v)
		if len(enc) != hsdt.EncodedSize(v) {
			t.Fatalf("EncodedSize mismatch: got %d, Encode produced %d", hsdt.EncodedSize(v), len(enc))
		}
		got, consumed, err := hsdt.Decode(enc)
		if err != nil {
			t.Fatalf("Decode of our own Encode output failed: %v", err)
		}
		if consumed != len(enc) {
			t.Fatalf("consumed %d, want %d", consumed, len(enc))
		}
		if !hsdt.Equal(got, v) {
			t.Fatalf("round trip value mismatch for kind %v", v.Kind)
		}
	})
}

// buildValue turns fuzzer-controlled scalars into a small bounded Value
// tree so the round-trip property test exercises every Kind, including
// Array and Map, without unbounded recursion.
func buildValue(raw []byte, n int64, kindSel uint8, depth int) hsdt.Value {
	if len(raw) > 64 {
		raw = raw[:64]
	}
	validUTF8 := make([]byte, 0, len(raw))
	for _, r := range string(raw) {
		validUTF8 = append(validUTF8, []byte(string(r))...)
	}
	switch kindSel % 8 {
	case 0:
		return hsdt.MakeNull()
	case 1:
		return hsdt.MakeBool(n%2 == 0)
	case 2:
		return hsdt.MakeBool(n%2 == 1)
	case 3:
		return hsdt.MakeByteString(raw)
	case 4:
		return hsdt.MakeUtf8String(string(validUTF8))
	case 5:
		f := float64(n) / 3.0
		return hsdt.MakeFloat(f)
	case 6:
		if depth >= 4 {
			return hsdt.MakeArray(nil)
		}
		count := int(kindSel % 4)
		elems := make([]hsdt.Value, 0, count)
		for i := 0; i < count; i++ {
			elems = append(elems, buildValue(raw, n+int64(i), kindSel/2, depth+1))
		}
		return hsdt.MakeArray(elems)
	default:
		if depth >= 4 {
			return hsdt.MakeMap(nil)
		}
		count := int(kindSel % 3)
		entries := make([]hsdt.Entry, 0, count)
		for i := 0; i < count; i++ {
			key := []byte{byte('a' + i)}
			entries = append(entries, hsdt.Entry{
				Key:   key,
				Value: buildValue(raw, n+int64(i), kindSel/2, depth+1),
			})
		}
		return hsdt.MakeMap(entries)
	}
}

// TestEqualReflexiveAndSymmetric checks that Equal is reflexive and
// symmetric across a handful of hand-built values of every Kind.
func TestEqualReflexiveAndSymmetric(t *testing.T) {
	values := []hsdt.Value{
		hsdt.MakeNull(),
		hsdt.MakeBool(true),
		hsdt.MakeBool(false),
		hsdt.MakeByteString([]byte{1, 2, 3}),
		hsdt.MakeUtf8String("hello"),
		hsdt.MakeFloat(3.5),
		hsdt.MakeFloat(nanValue()),
		hsdt.MakeArray([]hsdt.Value{hsdt.MakeBool(true), hsdt.MakeUtf8String("x")}),
		hsdt.MakeMap([]hsdt.Entry{{Key: []byte("k"), Value: hsdt.MakeFloat(1)}}),
	}
	for i, a := range values {
		if !hsdt.Equal(a, a) {
			t.Fatalf("value %d: Equal not reflexive", i)
		}
		for j, b := range values {
			if hsdt.Equal(a, b) != hsdt.Equal(b, a) {
				t.Fatalf("values %d,%d: Equal not symmetric", i, j)
			}
		}
	}
}

func nanValue() float64 {
	var z float64
	return z / z
}

// TestDecodeRejectsNonCanonicalNaN checks that only the single canonical
// NaN bit pattern is accepted; any other NaN payload is ErrInvalidNaN.
func TestDecodeRejectsNonCanonicalNaN(t *testing.T) {
	// 0x7ff8000000000001: a NaN payload, but not the canonical one.
	msg := []byte{0xfb, 0x7f, 0xf8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01}
	_, _, err := hsdt.Decode(msg)
	if err == nil {
		t.Fatalf("expected ErrInvalidNaN, got success")
	}
	de, ok := err.(*hsdt.DecodeError)
	if !ok || de.Kind != hsdt.ErrInvalidNaN {
		t.Fatalf("expected ErrInvalidNaN, got %v", err)
	}
}

// TestMakeMapPanicsOnDuplicateKey checks that MakeMap panics
// on a duplicate key, matching the decoder's own rejection of duplicates.
func TestMakeMapPanicsOnDuplicateKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MakeMap to panic on duplicate key")
		}
	}()
	hsdt.MakeMap([]hsdt.Entry{
		{Key: []byte("a"), Value: hsdt.MakeNull()},
		{Key: []byte("a"), Value: hsdt.MakeNull()},
	})
}

// TestMakeMapOrdersByByteLexicographicPrefix checks the "shorter prefix
// sorts first" rule explicitly, since it is easy to get backwards.
func TestMakeMapOrdersByByteLexicographicPrefix(t *testing.T) {
	v := hsdt.MakeMap([]hsdt.Entry{
		{Key: []byte("ab"), Value: hsdt.MakeNull()},
		{Key: []byte("a"), Value: hsdt.MakeNull()},
	})
	if len(v.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(v.Entries))
	}
	if string(v.Entries[0].Key) != "a" || string(v.Entries[1].Key) != "ab" {
		t.Fatalf("expected [a, ab] order, got [%s, %s]", v.Entries[0].Key, v.Entries[1].Key)
	}
}
