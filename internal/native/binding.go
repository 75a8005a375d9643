package native

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/sqlinst/sqlinst-go/internal/discovery"
)

// Binding owns the native library handle and the table of resolved entry
// points for one API context. There is no package-level state: callers hold
// a Binding and pass it to every operation.
//
// One mutex guards both the load sequence and cold symbol resolution. After
// warm-up, the loaded flag and the proc table are read without the lock
// (double-checked), so steady-state calls never serialize.
type Binding struct {
	resolver *discovery.Resolver
	loader   Loader
	log      *slog.Logger

	loaded atomic.Bool
	mu     sync.Mutex
	lib    Library
	sel    discovery.Selection
	procs  sync.Map // symbol name -> Proc[T] for that entry point's T
}

// NewBinding wires a binding over the given resolver and loader. A nil
// logger discards diagnostics.
func NewBinding(resolver *discovery.Resolver, loader Loader, log *slog.Logger) *Binding {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Binding{resolver: resolver, loader: loader, log: log}
}

// EnsureLoaded discovers and loads the native library on first use. A
// failure is never cached: the next call re-runs discovery and loading from
// scratch, so an installation that appears later is picked up.
func (b *Binding) EnsureLoaded() error {
	if b.loaded.Load() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loadLocked()
}

func (b *Binding) loadLocked() error {
	if b.loaded.Load() {
		return nil
	}

	sel, err := b.resolver.Resolve()
	if err != nil {
		b.log.Warn("native user-instance API not loaded", "error", err)
		return fmt.Errorf("%w: %w", ErrNotInstalled, err)
	}

	lib, err := b.loader.Load(sel.Path)
	if err != nil {
		var lerr *LoadError
		if errors.As(err, &lerr) {
			b.log.Error("native user-instance API load failed",
				"path", sel.Path, "os_error", lerr.OSCode, "error", err)
		} else {
			b.log.Error("native user-instance API load failed", "path", sel.Path, "error", err)
		}
		return fmt.Errorf("%w: %w", ErrNotInstalled, err)
	}

	b.lib = lib
	b.sel = sel
	b.loaded.Store(true)
	b.log.Info("native user-instance API loaded", "version", sel.Version, "path", sel.Path)
	return nil
}

// Resolve binds the named entry point to a function of type T, loading the
// library first if needed. Each name is resolved at most once per load; later
// lookups hit the cache. A missing symbol means the installed library does
// not match the expected API surface and collapses to ErrNotInstalled like
// every other load issue.
func Resolve[T any](b *Binding, name string) (Proc[T], error) {
	if p, ok := b.procs.Load(name); ok {
		return p.(Proc[T]), nil
	}
	if err := b.EnsureLoaded(); err != nil {
		return Proc[T]{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded.Load() {
		// Released between the load check and taking the lock.
		if err := b.loadLocked(); err != nil {
			return Proc[T]{}, err
		}
	}
	if p, ok := b.procs.Load(name); ok {
		return p.(Proc[T]), nil
	}

	p := Proc[T]{Name: name}
	if err := b.lib.Bind(name, &p.Fn); err != nil {
		b.log.Error("native entry point not found", "symbol", name, "error", err)
		return Proc[T]{}, fmt.Errorf("%w: symbol %s", ErrNotInstalled, name)
	}
	b.procs.Store(name, p)
	return p, nil
}

// Selected returns the discovery outcome backing the current load.
func (b *Binding) Selected() (discovery.Selection, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded.Load() {
		return discovery.Selection{}, false
	}
	return b.sel, true
}

// Release frees the OS handle and invalidates every cached entry point.
// Idempotent; after Release the binding behaves as if never loaded.
func (b *Binding) Release() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.loaded.Load() {
		return nil
	}
	b.loaded.Store(false)
	b.procs.Range(func(k, _ any) bool {
		b.procs.Delete(k)
		return true
	})
	lib := b.lib
	b.lib = nil
	b.sel = discovery.Selection{}
	return lib.Close()
}
