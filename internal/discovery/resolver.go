// Package discovery locates the installed native user-instance API by
// walking the system configuration store. It owns version parsing and the
// override-else-latest selection policy; loading the library it points at is
// the native package's job.
package discovery

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrNotFound is returned when no usable native API installation could be
// discovered: the store root is absent, no child parses as a version, the
// selected version has no install path, or the path is not a file on disk.
var ErrNotFound = errors.New("native user-instance API not found")

// PathValueName is the attribute under each version key that holds the
// absolute path of that version's native library.
const PathValueName = "InstanceAPIPath"

// Store is the capability the resolver needs from the configuration store.
// The production implementation reads the Windows registry; tests supply an
// in-memory fake.
type Store interface {
	// ListChildren returns the names of the direct children of key.
	ListChildren(key string) ([]string, error)
	// GetValue returns the string value called name stored under key.
	GetValue(key, name string) (string, error)
}

// Selection is the outcome of a successful discovery: the chosen version and
// the on-disk path of its native library.
type Selection struct {
	Version Version
	Path    string
}

// Resolver enumerates installed versions under Root and picks one according
// to the override-else-latest policy. Resolve is stateless; every call
// re-reads the store, so a store that changes between calls is re-observed.
type Resolver struct {
	Store Store
	Root  string

	// Override, when non-empty, names the version to prefer. It is compared
	// case-insensitively against discovered entries and falls back to the
	// latest version when it matches none of them.
	Override string

	Log *slog.Logger
}

// Resolve discovers installed versions and returns the selected one.
// Malformed version entries are skipped, never fatal. Selection is
// deterministic for fixed store contents and override value.
func (r *Resolver) Resolve() (Selection, error) {
	log := r.logger()

	children, err := r.Store.ListChildren(r.Root)
	if err != nil {
		log.Warn("registry key not found", "key", r.Root, "error", err)
		return Selection{}, fmt.Errorf("%w: %s", ErrNotFound, r.Root)
	}

	var (
		latest   Version
		override Version
	)
	for _, name := range children {
		v, err := ParseVersion(name)
		if err != nil {
			log.Warn("skipping invalid version entry", "entry", name, "error", err)
			continue
		}
		if latest.IsZero() || v.Compare(latest) > 0 {
			latest = v
		}
		if r.Override != "" && strings.EqualFold(name, r.Override) {
			override = v
		}
	}

	if latest.IsZero() {
		log.Warn("no native user-instance API found", "key", r.Root)
		return Selection{}, fmt.Errorf("%w: no valid version entries", ErrNotFound)
	}

	selected := latest
	switch {
	case !override.IsZero():
		selected = override
		log.Info("version override applied", "version", override)
	case r.Override != "":
		log.Warn("override version not installed, falling back to latest",
			"override", r.Override, "latest", latest)
	}

	path, err := r.Store.GetValue(r.Root+`\`+selected.String(), PathValueName)
	if err != nil || path == "" {
		log.Warn("selected version has no install path", "version", selected, "error", err)
		return Selection{}, fmt.Errorf("%w: version %s has no %s value", ErrNotFound, selected, PathValueName)
	}

	if fi, err := os.Stat(path); err != nil || fi.IsDir() {
		log.Warn("native user-instance API path missing on disk", "version", selected, "path", path)
		return Selection{}, fmt.Errorf("%w: %s does not exist", ErrNotFound, path)
	}

	return Selection{Version: selected, Path: path}, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
