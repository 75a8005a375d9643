package sqlinst

import "github.com/sqlinst/sqlinst-go/internal/native"

// Aliases for the loader capability surface, so callers can inject a custom
// loader (WithLoader) without reaching into internal packages. Production
// code never needs these; they exist for tests and exotic deployments.
type (
	// Status is a native API status code; zero is success.
	Status = native.Status
	// Library is an open handle to the loaded native module.
	Library = native.Library
	// Loader loads the native module at a filesystem path.
	Loader = native.Loader
)
