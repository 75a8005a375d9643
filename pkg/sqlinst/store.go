package sqlinst

import "github.com/sqlinst/sqlinst-go/internal/discovery"

// Configuration-store locations of the installed-versions tree. A 32-bit
// process on 64-bit Windows must read the alternate subtree.
const (
	installedVersionsKey      = `SOFTWARE\Microsoft\SQL Server User Instance API\Installed Versions`
	installedVersionsKeyWOW64 = `SOFTWARE\Wow6432Node\Microsoft\SQL Server User Instance API\Installed Versions`
)

// ConfigStore is the capability the version resolver needs from the system
// configuration store: enumerate the direct children of a key and read a
// named string value. The default implementation reads the Windows registry;
// tests and non-Windows callers inject their own (see MemStore).
type ConfigStore interface {
	ListChildren(key string) ([]string, error)
	GetValue(key, name string) (string, error)
}

// MemStore is an in-memory ConfigStore.
type MemStore = discovery.MemStore

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore { return discovery.NewMemStore() }
