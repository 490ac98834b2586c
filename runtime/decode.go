package hsdt

import "encoding/binary"

// Decoder reads HSDT values from byte slices. The zero value is ready to
// use with the default depth cap; configure a different cap with
// SetMaxDepth. A Decoder holds no state between calls to Decode.
type Decoder struct {
	maxDepth int
}

// NewDecoder constructs a Decoder with the default recursion depth cap.
func NewDecoder() *Decoder { return &Decoder{maxDepth: defaultMaxDepth} }

// SetMaxDepth configures the recursion depth cap. A value of zero restores
// the default. This guards the call stack against adversarially nested
// input per the design notes; it has no effect on well-formed shallow data.
func (d *Decoder) SetMaxDepth(max int) {
	if max <= 0 {
		max = defaultMaxDepth
	}
	d.maxDepth = max
}

// Decode reads exactly one value starting at offset 0 of b and returns it
// along with how many bytes were consumed. Trailing bytes beyond what was
// consumed are not an error of Decode itself; callers that require full
// consumption must check consumed == len(b) themselves.
func (d *Decoder) Decode(b []byte) (Value, int, error) {
	maxDepth := d.maxDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	v, n, err := decodeValue(b, 0, 0, maxDepth)
	if err != nil {
		return Value{}, n, err
	}
	return v, n, nil
}

// Decode reads one value from b using the default depth cap. It is a
// convenience wrapper around (*Decoder).Decode for callers that don't need
// to configure anything.
func Decode(b []byte) (Value, int, error) {
	return NewDecoder().Decode(b)
}

// decodeValue decodes one value starting at b[0], where base is the byte
// offset of b[0] within the original top-level input (used only to produce
// accurate error offsets). depth is the current nesting depth; it is
// checked against maxDepth before any recursive descent.
func decodeValue(b []byte, base, depth, maxDepth int) (Value, int, error) {
	if depth > maxDepth {
		return Value{}, 0, newDecodeError(ErrMaxDepthExceeded, base)
	}
	if len(b) < 1 {
		return Value{}, 0, newDecodeError(ErrEof, base)
	}

	switch b[0] {
	case byteFalse:
		return Value{Kind: KindFalse}, 1, nil
	case byteTrue:
		return Value{Kind: KindTrue}, 1, nil
	case byteNull:
		return Value{Kind: KindNull}, 1, nil
	case byteFloat:
		return decodeFloat(b, base)
	}

	major, _ := splitTypeByte(b[0])
	switch major {
	case majorByteString:
		return decodeByteString(b, base)
	case majorUtf8String:
		return decodeUtf8String(b, base)
	case majorArray:
		return decodeArray(b, base, depth, maxDepth)
	case majorMap:
		return decodeMap(b, base, depth, maxDepth)
	default:
		return Value{}, 0, newDecodeError(ErrTag, base)
	}
}

func decodeFloat(b []byte, base int) (Value, int, error) {
	if len(b) < 9 {
		return Value{}, 0, newDecodeError(ErrEof, base)
	}
	bits := binary.BigEndian.Uint64(b[1:9])
	f := bitsToFloat(bits)
	if isNaN(f) && bits != canonicalNaN {
		return Value{}, 0, newDecodeError(ErrInvalidNaN, base)
	}
	return Value{Kind: KindFloat, Float: f}, 9, nil
}

func decodeByteString(b []byte, base int) (Value, int, error) {
	n, hdr, err := readLength(b, majorByteString, base)
	if err != nil {
		return Value{}, 0, err
	}
	total := hdr + int(n)
	if n > uint64(len(b)-hdr) || total < 0 {
		return Value{}, hdr, newDecodeError(ErrEof, base)
	}
	out := make([]byte, n)
	copy(out, b[hdr:total])
	return Value{Kind: KindByteString, Str: out}, total, nil
}

func decodeUtf8String(b []byte, base int) (Value, int, error) {
	n, hdr, err := readLength(b, majorUtf8String, base)
	if err != nil {
		return Value{}, 0, err
	}
	total := hdr + int(n)
	if n > uint64(len(b)-hdr) || total < 0 {
		return Value{}, hdr, newDecodeError(ErrEof, base)
	}
	body := b[hdr:total]
	if !isWellFormedUTF8(body) {
		return Value{}, hdr, newDecodeError(ErrUtf8, base+hdr)
	}
	out := make([]byte, n)
	copy(out, body)
	return Value{Kind: KindUtf8String, Str: out}, total, nil
}

// decodeArray decodes an Array header followed by count elements. As a
// cheap bomb defense against an attacker-inflated count, it requires at
// least one remaining byte per claimed element before attempting to decode
// any of them. On a later error, elems is truncated to exactly the
// successfully decoded prefix so a caller can still walk and release it.
func decodeArray(b []byte, base, depth, maxDepth int) (Value, int, error) {
	n, hdr, err := readLength(b, majorArray, base)
	if err != nil {
		return Value{}, 0, err
	}
	if n > uint64(len(b)-hdr) {
		return Value{}, hdr, newDecodeError(ErrEof, base)
	}
	elems := make([]Value, 0, n)
	pos := hdr
	for i := uint64(0); i < n; i++ {
		v, consumed, err := decodeValue(b[pos:], base+pos, depth+1, maxDepth)
		if err != nil {
			return Value{Kind: KindArray, Array: elems}, pos, err
		}
		elems = append(elems, v)
		pos += consumed
	}
	return Value{Kind: KindArray, Array: elems}, pos, nil
}

// decodeMap decodes a Map header followed by count entries, each a
// Utf8String key then a value. Keys must have major kind Utf8String
// (else ErrUtf8Key), must be well-formed UTF-8 (else ErrUtf8), and must
// compare strictly greater than the previous key under byte-wise
// lexicographic order (else ErrCanonicOrder, which also subsumes
// duplicate-key detection).
func decodeMap(b []byte, base, depth, maxDepth int) (Value, int, error) {
	n, hdr, err := readLength(b, majorMap, base)
	if err != nil {
		return Value{}, 0, err
	}
	// Bomb defense: each entry needs at least a one-byte key and a
	// one-byte value, so reject a count the remaining bytes can't possibly
	// satisfy before allocating entries, mirroring decodeArray's check.
	if n > uint64(len(b)-hdr)/2 {
		return Value{}, hdr, newDecodeError(ErrEof, base)
	}
	entries := make([]Entry, 0, n)
	pos := hdr
	var prevKey []byte
	for i := uint64(0); i < n; i++ {
		if len(b) <= pos {
			return Value{Kind: KindMap, Entries: entries}, pos, newDecodeError(ErrEof, base+pos)
		}
		major, _ := splitTypeByte(b[pos])
		if major != majorUtf8String {
			return Value{Kind: KindMap, Entries: entries}, pos, newDecodeError(ErrUtf8Key, base+pos)
		}
		klen, khdr, err := readLength(b[pos:], majorUtf8String, base+pos)
		if err != nil {
			return Value{Kind: KindMap, Entries: entries}, pos, err
		}
		keyStart := pos + khdr
		keyEnd := keyStart + int(klen)
		if klen > uint64(len(b)-keyStart) || keyEnd < 0 {
			return Value{Kind: KindMap, Entries: entries}, pos, newDecodeError(ErrEof, base+pos)
		}
		keyBody := b[keyStart:keyEnd]
		if !isWellFormedUTF8(keyBody) {
			return Value{Kind: KindMap, Entries: entries}, pos, newDecodeError(ErrUtf8, base+keyStart)
		}
		if prevKey != nil && !lessKey(prevKey, keyBody) {
			return Value{Kind: KindMap, Entries: entries}, pos, newDecodeError(ErrCanonicOrder, base+pos)
		}
		key := make([]byte, klen)
		copy(key, keyBody)

		val, consumed, err := decodeValue(b[keyEnd:], base+keyEnd, depth+1, maxDepth)
		if err != nil {
			return Value{Kind: KindMap, Entries: entries}, keyEnd, err
		}
		entries = append(entries, Entry{Key: key, Value: val})
		prevKey = key
		pos = keyEnd + consumed
	}
	return Value{Kind: KindMap, Entries: entries}, pos, nil
}
