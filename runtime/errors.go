package hsdt

import "strconv"

// ErrKind is the closed set of reasons Decode can fail.
type ErrKind uint8

const (
	// ErrNone is a reserved sentinel; never returned by Decode itself.
	ErrNone ErrKind = iota
	// ErrEof means the input ended before a value finished decoding.
	ErrEof
	// ErrTag means the first byte (or its major kind) names no assigned value kind.
	ErrTag
	// ErrUtf8 means a Utf8String or map key contains malformed UTF-8.
	ErrUtf8
	// ErrInvalidNaN means a Float is a NaN whose bit pattern differs from the canonical one.
	ErrInvalidNaN
	// ErrUtf8Key means a map key's major kind is not Utf8String.
	ErrUtf8Key
	// ErrCanonicLength means a length prefix used a wider form than the shortest one possible.
	ErrCanonicLength
	// ErrCanonicOrder means a map key is not strictly greater than its predecessor
	// (covers both out-of-order keys and exact duplicates).
	ErrCanonicOrder
	// ErrOutOfMemory is reserved for allocation failure. Go's allocator aborts the
	// process rather than returning an error on true exhaustion, so this kind is
	// never actually raised by Decode; it exists for closed-set documentation
	// parity with the design notes.
	ErrOutOfMemory
	// ErrMaxDepthExceeded means the input nests deeper than the decoder's configured cap.
	ErrMaxDepthExceeded
)

// ErrDuplicateKey is a documented alias of ErrCanonicOrder: the source
// format declares a distinct duplicate-key error but never raises it
// separately from ordering, so this package never raises it separately
// either. It is kept as its own name for callers that want to reference the
// concept explicitly; it compares equal to ErrCanonicOrder.
const ErrDuplicateKey = ErrCanonicOrder

// String implements fmt.Stringer.
func (k ErrKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrEof:
		return "eof"
	case ErrTag:
		return "tag"
	case ErrUtf8:
		return "utf8"
	case ErrInvalidNaN:
		return "invalid_nan"
	case ErrUtf8Key:
		return "utf8_key"
	case ErrCanonicLength:
		return "canonic_length"
	case ErrCanonicOrder:
		return "canonic_order"
	case ErrOutOfMemory:
		return "out_of_memory"
	case ErrMaxDepthExceeded:
		return "max_depth_exceeded"
	default:
		return "<invalid>"
	}
}

// DecodeError is the error type returned by Decode. It always carries a
// closed ErrKind plus the byte offset (from the start of the original
// input) at which the failure was detected, so callers can branch on kind
// without string matching while still getting a locatable message.
type DecodeError struct {
	Kind   ErrKind
	Offset int
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return "hsdt: " + e.Kind.String() + " at offset " + strconv.Itoa(e.Offset)
}

// Is allows errors.Is(err, hsdt.ErrEof) style comparisons against a bare
// ErrKind wrapped as an error by errKind.Error below.
func (e *DecodeError) Is(target error) bool {
	if k, ok := target.(errKind); ok {
		return e.Kind == k.kind
	}
	return false
}

// errKind lets the package-level sentinels (Eof, Tag, ...) below be used
// both as documentation and as errors.Is targets against a *DecodeError.
type errKind struct{ kind ErrKind }

func (e errKind) Error() string { return "hsdt: " + e.kind.String() }

// Sentinel errors for errors.Is comparisons, one per ErrKind.
var (
	Eof               error = errKind{ErrEof}
	Tag               error = errKind{ErrTag}
	Utf8              error = errKind{ErrUtf8}
	InvalidNaN        error = errKind{ErrInvalidNaN}
	Utf8Key           error = errKind{ErrUtf8Key}
	CanonicLength     error = errKind{ErrCanonicLength}
	CanonicOrder      error = errKind{ErrCanonicOrder}
	DuplicateKey      error = errKind{ErrDuplicateKey}
	OutOfMemory       error = errKind{ErrOutOfMemory}
	MaxDepthExceeded  error = errKind{ErrMaxDepthExceeded}
)

func newDecodeError(kind ErrKind, offset int) error {
	return &DecodeError{Kind: kind, Offset: offset}
}
