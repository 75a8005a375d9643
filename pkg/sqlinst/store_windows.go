//go:build windows

package sqlinst

import (
	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

// SystemStore returns a ConfigStore backed by HKEY_LOCAL_MACHINE.
func SystemStore() ConfigStore { return registryStore{} }

type registryStore struct{}

func (registryStore) ListChildren(key string) ([]string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, key, registry.ENUMERATE_SUB_KEYS|registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()
	return k.ReadSubKeyNames(-1)
}

func (registryStore) GetValue(key, name string) (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, key, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer k.Close()
	v, _, err := k.GetStringValue(name)
	return v, err
}

// defaultRoot picks the installed-versions subtree for the current process
// bitness: a 32-bit process on 64-bit Windows reads the WOW64 view.
func defaultRoot() string {
	var wow64 bool
	if err := windows.IsWow64Process(windows.CurrentProcess(), &wow64); err == nil && wow64 {
		return installedVersionsKeyWOW64
	}
	return installedVersionsKey
}
