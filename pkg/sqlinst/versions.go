package sqlinst

import "github.com/sqlinst/sqlinst-go/internal/native"

// Versions enumerates the installed native API versions.
func (a *API) Versions() ([]string, error) {
	return a.enumerate("GetVersions", native.MaxVersionChars)
}
