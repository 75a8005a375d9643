package sqlinst

import (
	"errors"
	"fmt"

	"github.com/sqlinst/sqlinst-go/internal/native"
)

// ErrNotInstalled is returned by every operation when the native
// user-instance API is unavailable: no installed version was discovered, the
// library failed to load, or an expected entry point was missing. The cases
// are distinguished in the diagnostic log, not at the error level.
var ErrNotInstalled = errors.New("sqlinst: native user-instance API is not installed")

// ErrBufferNegotiation is returned when a native call still reports an
// insufficient buffer after the single resize-and-retry.
var ErrBufferNegotiation = native.ErrBufferNegotiation

// NativeError is a non-zero status returned by a native call, with the
// message the native API's own formatter produced for it (best effort;
// Message is empty when translation itself failed).
type NativeError struct {
	Op      string
	Code    uint32
	Message string
}

func (e *NativeError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("sqlinst: %s: %s (status 0x%08X)", e.Op, e.Message, e.Code)
	}
	return fmt.Sprintf("sqlinst: %s: native status 0x%08X", e.Op, e.Code)
}

// wrap translates internal binding errors to the public taxonomy, following
// the same remapping discipline at the package boundary that the internal
// layers use among themselves.
func (a *API) wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *native.StatusError
	if errors.As(err, &se) {
		return a.nativeError(se.Op, se.Status)
	}
	if errors.Is(err, native.ErrNotInstalled) {
		return fmt.Errorf("%w (%s)", ErrNotInstalled, op)
	}
	return fmt.Errorf("sqlinst: %s: %w", op, err)
}

// nativeError builds a NativeError for a non-zero status, translating it
// through the native formatter. Translation failures are swallowed: the
// original status is what matters.
func (a *API) nativeError(op string, st native.Status) error {
	msg, err := a.binding.FormatMessage(st, a.language)
	if err != nil {
		msg = ""
	}
	return &NativeError{Op: op, Code: uint32(st), Message: msg}
}

// FormatMessage translates a native status code into text using the native
// API's own message formatter and the context's language setting.
func (a *API) FormatMessage(code uint32) (string, error) {
	msg, err := a.binding.FormatMessage(native.Status(code), a.language)
	if err != nil {
		return "", a.wrap("FormatMessage", err)
	}
	return msg, nil
}
