package sqlinst

import (
	"log/slog"
	"os"

	"github.com/sqlinst/sqlinst-go/internal/discovery"
	"github.com/sqlinst/sqlinst-go/internal/native"
)

// EnvOverrideVersion names the environment variable that pins the native
// API version, equivalent to WithOverrideVersion. The programmatic option
// wins when both are set.
const EnvOverrideVersion = "SQLINST_OVERRIDE_VERSION"

// API is the caller-owned context for every operation against the native
// user-instance API. It owns the library handle and the resolved entry-point
// cache; construct one with New and share it freely, all methods are safe
// for concurrent use.
//
// The native library is loaded lazily on the first operation. A failed load
// is not cached: the next operation re-runs discovery and loading from
// scratch.
type API struct {
	binding  *native.Binding
	log      *slog.Logger
	language uint32
}

type options struct {
	store    ConfigStore
	loader   native.Loader
	root     string
	override string
	language uint32
	logger   *slog.Logger
}

// Option configures New.
type Option func(*options)

// WithLogger directs diagnostic events to log. By default they are
// discarded.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}

// WithConfigStore replaces the system configuration store, e.g. with a
// MemStore in tests.
func WithConfigStore(s ConfigStore) Option {
	return func(o *options) { o.store = s }
}

// WithLoader replaces the system library loader.
func WithLoader(l Loader) Option {
	return func(o *options) { o.loader = l }
}

// WithConfigRoot overrides the configuration-store key under which installed
// versions are enumerated.
func WithConfigRoot(root string) Option {
	return func(o *options) { o.root = root }
}

// WithOverrideVersion pins the native API version instead of using the
// latest installed one. If the pinned version is not installed, the latest
// one is used and a warning is logged.
func WithOverrideVersion(version string) Option {
	return func(o *options) { o.override = version }
}

// WithLanguageID sets the language used when translating native status
// codes. Zero (the default) requests the native API's own locale order.
func WithLanguageID(id uint32) Option {
	return func(o *options) { o.language = id }
}

// New builds an API context. No native code is touched until the first
// operation.
func New(opts ...Option) *API {
	o := options{
		store:  SystemStore(),
		loader: native.SystemLoader(),
		root:   defaultRoot(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.override == "" {
		o.override = os.Getenv(EnvOverrideVersion)
	}

	resolver := &discovery.Resolver{
		Store:    o.store,
		Root:     o.root,
		Override: o.override,
		Log:      o.logger,
	}
	return &API{
		binding:  native.NewBinding(resolver, o.loader, o.logger),
		log:      o.logger,
		language: o.language,
	}
}

// APIVersion loads the native library if necessary and returns the selected
// version string.
func (a *API) APIVersion() (string, error) {
	if err := a.binding.EnsureLoaded(); err != nil {
		return "", a.wrap("APIVersion", err)
	}
	sel, ok := a.binding.Selected()
	if !ok {
		return "", a.wrap("APIVersion", native.ErrNotInstalled)
	}
	return sel.Version.String(), nil
}

// Close releases the native library handle and invalidates every cached
// entry point. Idempotent. A later operation reloads from scratch.
func (a *API) Close() error {
	return a.binding.Release()
}
