package native

import (
	"errors"
	"fmt"
	"unicode/utf16"
)

// Fixed widths of the native API's UTF-16 buffers, in code units including
// the terminating NUL where the native side writes one.
const (
	MaxInstanceNameChars  = 129 // 128 + NUL
	MaxVersionChars       = 44  // 43 + NUL
	ConnectionStringChars = 260
	MaxSIDChars           = 188

	// DefaultMessageChars is the first-call capacity for FormatMessage.
	DefaultMessageChars = 1024
	// DefaultEnumEntries is the first-call entry count for the instance and
	// version enumerations.
	DefaultEnumEntries = 16
)

// ErrBufferNegotiation is returned when a native call still reports an
// insufficient buffer after being retried once with the size it asked for.
var ErrBufferNegotiation = errors.New("buffer size negotiation failed twice")

// Negotiate drives the two-call caller-allocates protocol shared by every
// variable-length native output. call is invoked with the current capacity
// (in whatever element unit the entry point counts) and returns the native
// status plus the updated element count. On StatusInsufficientBuffer the
// call is repeated exactly once with the reported required capacity; a
// second shortfall is a hard failure. Any other non-zero status is returned
// as a *StatusError for the caller to translate.
//
// The closure owns buffer allocation so the negotiated storage never
// outlives the call.
func Negotiate(op string, initial uint32, call func(capacity uint32) (Status, uint32)) (uint32, error) {
	st, n := call(initial)
	if st == StatusInsufficientBuffer {
		required := n
		st, n = call(required)
		if st == StatusInsufficientBuffer {
			return 0, fmt.Errorf("%s: %w (asked for %d, then %d)", op, ErrBufferNegotiation, required, n)
		}
	}
	if st != StatusOK {
		return 0, &StatusError{Op: op, Status: st}
	}
	return n, nil
}

// TrimWide decodes a NUL-padded fixed-width UTF-16 field. Fixed-width record
// fields have a statically known maximum width and never go through
// Negotiate; this is the one place the trailing-NUL trimming lives.
func TrimWide(buf []uint16) string {
	for i, c := range buf {
		if c == 0 {
			buf = buf[:i]
			break
		}
	}
	return string(utf16.Decode(buf))
}

// Wide encodes s as a NUL-terminated UTF-16 buffer for passing into the
// native API.
func Wide(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}
