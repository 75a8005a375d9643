//go:build !windows

package sqlinst

import "fmt"

// SystemStore returns a ConfigStore that reports every key as absent. There
// is no system-wide configuration store for the native API off Windows, so
// callers on other platforms must inject their own store (or accept
// ErrNotInstalled from every operation).
func SystemStore() ConfigStore { return absentStore{} }

type absentStore struct{}

func (absentStore) ListChildren(key string) ([]string, error) {
	return nil, fmt.Errorf("no system configuration store on this platform (key %q)", key)
}

func (absentStore) GetValue(key, name string) (string, error) {
	return "", fmt.Errorf("no system configuration store on this platform (key %q)", key)
}

func defaultRoot() string { return installedVersionsKey }
