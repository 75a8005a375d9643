// Package sqlinst is a managed Go surface over the versioned native
// user-instance API, the shared library that creates, starts, stops, and
// shares named database instances on behalf of the current user.
//
// The native library is not part of this module. An API context discovers
// the installed version through the system configuration store, loads the
// library lazily on first use, resolves entry points on demand, and drives
// the two-call caller-allocates buffer protocol the native API uses for all
// variable-length output.
//
//	api := sqlinst.New(sqlinst.WithLogger(slog.Default()))
//	defer api.Close()
//
//	conn, err := api.StartInstance("reporting")
//	if errors.Is(err, sqlinst.ErrNotInstalled) {
//	    // no native API on this machine
//	}
//
// Every method on API is safe for concurrent use. Operations fail with
// ErrNotInstalled while the native API is unavailable; the failure is never
// cached, so an installation that appears later is picked up by the next
// call.
package sqlinst
