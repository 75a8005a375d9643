// Package native binds the versioned user-instance shared library at
// runtime. It owns the process-wide concerns the public wrapper must never
// see: locating the library through the discovery package, loading it with
// the most restrictive search mode the OS supports, memoizing entry-point
// resolution, and driving the two-call buffer protocol every variable-length
// native output uses.
//
// This package should only be imported by pkg/sqlinst.
package native

import (
	"errors"
	"fmt"
)

// Status is a native API status code. Zero is success; any other value is an
// error code only FormatMessage can explain.
type Status uint32

const (
	// StatusOK is the success status.
	StatusOK Status = 0

	// StatusInsufficientBuffer is reported by a variable-length call when
	// the caller's buffer is too small; the in/out count then carries the
	// required size. Consumed internally by Negotiate, never surfaced.
	StatusInsufficientBuffer Status = 0x89C50114

	// StatusNotInstalled is synthesized locally when the native API cannot
	// be discovered, loaded, or lacks an expected entry point. The native
	// side never returns it.
	StatusNotInstalled Status = 0x89C50116
)

// ErrNotInstalled is the sentinel every operation observes when the native
// API is unavailable for any reason: store root absent, no valid versions,
// library failed to load, or an expected symbol is missing. Callers cannot
// distinguish those cases at the error level; the logs can.
var ErrNotInstalled = errors.New("native user-instance API not installed")

// StatusError carries a non-zero status returned by a native call. The
// public wrapper translates it to text via FormatMessage on demand.
type StatusError struct {
	Op     string
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed with native status 0x%08X", e.Op, uint32(e.Status))
}
