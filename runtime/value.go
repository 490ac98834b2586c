package hsdt

import (
	"fmt"
	"sort"
	"strings"
)

// Kind discriminates the eight value variants of the HSDT data model.
type Kind uint8

const (
	KindNull Kind = iota
	KindTrue
	KindFalse
	KindByteString
	KindUtf8String
	KindFloat
	KindArray
	KindMap
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindByteString:
		return "bytestring"
	case KindUtf8String:
		return "utf8string"
	case KindFloat:
		return "float"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "<invalid>"
	}
}

// Entry is one key/value pair of a Map, kept in strict ascending order by
// Key's byte content (spec: shorter-but-equal-prefix sorts first).
type Entry struct {
	Key   []byte
	Value Value
}

// Value is a tagged union over the eight HSDT value kinds. Only the field
// matching Kind is meaningful; ByteString/Utf8String share the Str field,
// differing only in tag and in whether the decoder ran UTF-8 validation.
type Value struct {
	Kind    Kind
	Str     []byte
	Float   float64
	Array   []Value
	Entries []Entry
}

// MakeNull constructs a Null value.
func MakeNull() Value { return Value{Kind: KindNull} }

// MakeBool constructs True or False.
func MakeBool(b bool) Value {
	if b {
		return Value{Kind: KindTrue}
	}
	return Value{Kind: KindFalse}
}

// MakeByteString constructs a ByteString value. The caller's slice is taken
// by reference; pass a copy if the source may be mutated afterwards.
func MakeByteString(b []byte) Value { return Value{Kind: KindByteString, Str: b} }

// MakeUtf8String constructs a Utf8String value from a string known to
// already be well-formed UTF-8. Use it only when that invariant is already
// established (e.g. it came from a Go string, which is conventionally but
// not guaranteedly valid UTF-8); decoded values are validated separately.
func MakeUtf8String(s string) Value { return Value{Kind: KindUtf8String, Str: []byte(s)} }

// MakeFloat constructs a Float value, canonicalizing any NaN to the single
// permitted bit pattern.
func MakeFloat(f float64) Value {
	if isNaN(f) {
		return Value{Kind: KindFloat, Float: canonicalNaNFloat()}
	}
	return Value{Kind: KindFloat, Float: f}
}

// MakeArray constructs an Array value owning the given elements in order.
func MakeArray(elems []Value) Value { return Value{Kind: KindArray, Array: elems} }

// MakeMap constructs a Map value from arbitrary-order entries, sorting them
// into strict canonical (lexicographic, byte-wise) order by key. It panics
// if two entries share an identical key, since a Map's keys must be unique;
// callers assembling data programmatically should de-duplicate first.
func MakeMap(entries []Entry) Value {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return lessKey(sorted[i].Key, sorted[j].Key)
	})
	for i := 1; i < len(sorted); i++ {
		if !lessKey(sorted[i-1].Key, sorted[i].Key) {
			panic("hsdt: MakeMap given duplicate key")
		}
	}
	return Value{Kind: KindMap, Entries: sorted}
}

// lessKey reports whether a sorts strictly before b under HSDT's canonical
// byte-wise lexicographic order (a shorter-but-equal-prefix key is less).
func lessKey(a, b []byte) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Free releases a Value's owned storage. Go's garbage collector reclaims
// memory on its own; Free exists for API parity with the spec's operation
// table and so callers that pool or reuse Values get a deterministic,
// idempotent way to invalidate
// one before reuse. It walks the tree post-order, same as the lifecycle
// described for a manually managed implementation.
func Free(v *Value) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindArray:
		for i := range v.Array {
			Free(&v.Array[i])
		}
	case KindMap:
		for i := range v.Entries {
			v.Entries[i].Key = nil
			Free(&v.Entries[i].Value)
		}
	}
	v.Str = nil
	v.Array = nil
	v.Entries = nil
	v.Kind = KindNull
	v.Float = 0
}

// String renders a compact, human-readable form of v for debugging and
// test failure messages. It is not part of the wire format and carries no
// stability guarantee across versions.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindByteString:
		return fmt.Sprintf("h'%x'", v.Str)
	case KindUtf8String:
		return fmt.Sprintf("%q", v.Str)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindArray:
		parts := make([]string, len(v.Array))
		for i, e := range v.Array {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		parts := make([]string, len(v.Entries))
		for i, e := range v.Entries {
			parts[i] = fmt.Sprintf("%q: %s", e.Key, e.Value.String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<invalid>"
	}
}

func isNaN(f float64) bool { return f != f }

func canonicalNaNFloat() float64 { return bitsToFloat(canonicalNaN) }
