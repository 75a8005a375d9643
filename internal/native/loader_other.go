//go:build !windows && !darwin && !freebsd && !linux && !netbsd

package native

import "errors"

// SystemLoader on platforms without a dynamic loader always fails, which
// surfaces to callers as ErrNotInstalled.
func SystemLoader() Loader { return unsupportedLoader{} }

type unsupportedLoader struct{}

func (unsupportedLoader) Load(path string) (Library, error) {
	return nil, &LoadError{Path: path, Err: errors.New("dynamic loading not supported on this platform")}
}
