package native

import "fmt"

// Library is an open handle to the loaded native module.
type Library interface {
	// Bind resolves the named exported entry point into fn, which must be a
	// pointer to a function variable carrying the entry point's signature.
	// Pointer arguments of the bound function are passed to the native side
	// as-is and stay managed by the Go runtime up to the call itself, so
	// callers never convert them to raw addresses. The binding stays valid
	// until Close.
	Bind(name string, fn any) error
	// Close releases the OS handle.
	Close() error
}

// Loader loads the native module at a filesystem path. The production
// implementations live in the platform files; tests inject fakes.
type Loader interface {
	Load(path string) (Library, error)
}

// LoadError is an OS-level failure to load the library file. OSCode is the
// platform error code captured at the load site, kept for the logs so a
// load failure stays distinguishable from a missing installation.
type LoadError struct {
	Path   string
	OSCode uint32
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v (os error %d)", e.Path, e.Err, e.OSCode)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Proc is a resolved native entry point bound to a function of type T. The
// symbol name is retained for diagnostics.
type Proc[T any] struct {
	Name string
	Fn   T
}
