package hsdt

import "encoding/binary"

// lengthCodecBytes returns how many bytes beyond the type byte the length
// codec uses to encode n: 0, 1, 2, 4, or 8, per the minimum-width rule.
func lengthCodecBytes(n uint64) int {
	switch {
	case n <= lenMaxDirect:
		return 0
	case n <= 0xFF:
		return 1
	case n <= 0xFFFF:
		return 2
	case n <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}

// appendLength writes major's type byte and, if needed, the canonical
// minimum-width length suffix for n.
func appendLength(b []byte, major majorKind, n uint64) []byte {
	switch {
	case n <= lenMaxDirect:
		return append(b, makeTypeByte(major, uint8(n)))
	case n <= 0xFF:
		return append(b, makeTypeByte(major, lenInline8), uint8(n))
	case n <= 0xFFFF:
		b = append(b, makeTypeByte(major, lenInline16), 0, 0)
		binary.BigEndian.PutUint16(b[len(b)-2:], uint16(n))
		return b
	case n <= 0xFFFFFFFF:
		b = append(b, makeTypeByte(major, lenInline32), 0, 0, 0, 0)
		binary.BigEndian.PutUint32(b[len(b)-4:], uint32(n))
		return b
	default:
		b = append(b, makeTypeByte(major, lenInline64), 0, 0, 0, 0, 0, 0, 0, 0)
		binary.BigEndian.PutUint64(b[len(b)-8:], n)
		return b
	}
}

// readLength reads a length prefix whose major kind is already known to be
// wantMajor (the caller has checked the type byte) and returns the decoded
// count, the number of bytes consumed including the type byte, and any
// error. It enforces the canonical minimum-width rule: a wider form that
// encodes a value which would have fit a narrower one is ErrCanonicLength.
func readLength(b []byte, wantMajor majorKind, offset int) (n uint64, consumed int, err error) {
	if len(b) < 1 {
		return 0, 0, newDecodeError(ErrEof, offset)
	}
	major, add := splitTypeByte(b[0])
	if major != wantMajor {
		return 0, 0, newDecodeError(ErrTag, offset)
	}
	switch {
	case add <= lenMaxDirect:
		return uint64(add), 1, nil
	case add == lenInline8:
		if len(b) < 2 {
			return 0, 0, newDecodeError(ErrEof, offset)
		}
		v := uint64(b[1])
		if v <= lenMaxDirect {
			return 0, 0, newDecodeError(ErrCanonicLength, offset)
		}
		return v, 2, nil
	case add == lenInline16:
		if len(b) < 3 {
			return 0, 0, newDecodeError(ErrEof, offset)
		}
		v := uint64(binary.BigEndian.Uint16(b[1:3]))
		if v <= 0xFF {
			return 0, 0, newDecodeError(ErrCanonicLength, offset)
		}
		return v, 3, nil
	case add == lenInline32:
		if len(b) < 5 {
			return 0, 0, newDecodeError(ErrEof, offset)
		}
		v := uint64(binary.BigEndian.Uint32(b[1:5]))
		if v <= 0xFFFF {
			return 0, 0, newDecodeError(ErrCanonicLength, offset)
		}
		return v, 5, nil
	case add == lenInline64:
		if len(b) < 9 {
			return 0, 0, newDecodeError(ErrEof, offset)
		}
		v := binary.BigEndian.Uint64(b[1:9])
		if v <= 0xFFFFFFFF {
			return 0, 0, newDecodeError(ErrCanonicLength, offset)
		}
		return v, 9, nil
	default:
		// add in 28..30: unassigned, and 31 has no meaning without
		// indefinite-length support, which HSDT does not have.
		return 0, 0, newDecodeError(ErrTag, offset)
	}
}
