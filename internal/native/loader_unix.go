//go:build darwin || freebsd || linux || netbsd

package native

import (
	"github.com/ebitengine/purego"
)

// SystemLoader loads the native library with dlopen. RTLD_LOCAL keeps the
// module's symbols out of the global namespace, the closest analogue of the
// restricted search mode used on Windows.
func SystemLoader() Loader { return systemLoader{} }

type systemLoader struct{}

func (systemLoader) Load(path string) (Library, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return &systemLibrary{handle: h}, nil
}

type systemLibrary struct {
	handle uintptr
}

func (l *systemLibrary) Bind(name string, fn any) error {
	addr, err := purego.Dlsym(l.handle, name)
	if err != nil {
		return err
	}
	purego.RegisterFunc(fn, addr)
	return nil
}

func (l *systemLibrary) Close() error {
	return purego.Dlclose(l.handle)
}
