package sqlinst

import "github.com/sqlinst/sqlinst-go/internal/native"

// Signatures of the native entry points. The loader seam binds each symbol
// to a function of the matching type, so pointer arguments stay typed all
// the way to the foreign call.
type (
	createInstanceFn  func(version, name *uint16, flags uint32) native.Status
	deleteInstanceFn  func(name *uint16, flags uint32) native.Status
	enumerateFn       func(buf *uint16, count *uint32) native.Status
	startInstanceFn   func(name *uint16, flags uint32, conn *uint16, count *uint32) native.Status
	stopInstanceFn    func(name *uint16, flags, seconds uint32) native.Status
	shareInstanceFn   func(owner, name, sharedName *uint16, flags uint32) native.Status
	unshareInstanceFn func(name *uint16, flags uint32) native.Status
	instanceInfoFn    func(name *uint16, rec *instanceInfoRecord, size uint32) native.Status
	versionInfoFn     func(version *uint16, rec *versionInfoRecord, size uint32) native.Status
	tracingFn         func() native.Status
)

// status resolves op to a function of type T and runs call, translating a
// non-zero status into a NativeError. Shared by every operation without
// variable-length output.
func status[T any](a *API, op string, call func(fn T) native.Status) error {
	p, err := native.Resolve[T](a.binding, op)
	if err != nil {
		return a.wrap(op, err)
	}
	if st := call(p.Fn); st != native.StatusOK {
		return a.nativeError(op, st)
	}
	return nil
}
