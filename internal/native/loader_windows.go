//go:build windows

package native

import (
	"errors"
	"sync"
	"syscall"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/windows"
)

// SystemLoader loads the native library through LoadLibraryEx. When the host
// exposes the enhanced DLL search path capability, loading is restricted to
// the default directory set; this hardening against DLL planting must not be
// removed.
func SystemLoader() Loader { return systemLoader{} }

type systemLoader struct{}

func (systemLoader) Load(path string) (Library, error) {
	var flags uint32
	if secureSearchSupported() {
		flags = windows.LOAD_LIBRARY_SEARCH_DEFAULT_DIRS
	}
	h, err := windows.LoadLibraryEx(path, 0, flags)
	if err != nil {
		var code uint32
		var errno syscall.Errno
		if errors.As(err, &errno) {
			code = uint32(errno)
		}
		return nil, &LoadError{Path: path, OSCode: code, Err: err}
	}
	return &systemLibrary{handle: h}, nil
}

var secureSearchOnce = sync.OnceValue(func() bool {
	// AddDllDirectory is only exported where the loader understands the
	// LOAD_LIBRARY_SEARCH_* flags.
	k32 := windows.NewLazySystemDLL("kernel32.dll")
	return k32.NewProc("AddDllDirectory").Find() == nil
})

func secureSearchSupported() bool { return secureSearchOnce() }

type systemLibrary struct {
	handle windows.Handle
}

func (l *systemLibrary) Bind(name string, fn any) error {
	addr, err := windows.GetProcAddress(l.handle, name)
	if err != nil {
		return err
	}
	purego.RegisterFunc(fn, addr)
	return nil
}

func (l *systemLibrary) Close() error {
	return windows.FreeLibrary(l.handle)
}
