package sqlinst

import (
	"time"

	"github.com/sqlinst/sqlinst-go/internal/native"
)

// CreateInstance creates a named instance of the given native API version.
func (a *API) CreateInstance(version, name string) error {
	wv := native.Wide(version)
	wn := native.Wide(name)
	return status(a, "CreateInstance", func(fn createInstanceFn) native.Status {
		return fn(&wv[0], &wn[0], 0)
	})
}

// DeleteInstance removes a named instance.
func (a *API) DeleteInstance(name string) error {
	wn := native.Wide(name)
	return status(a, "DeleteInstance", func(fn deleteInstanceFn) native.Status {
		return fn(&wn[0], 0)
	})
}

// InstanceNames enumerates the names of all instances visible to the
// current user.
func (a *API) InstanceNames() ([]string, error) {
	return a.enumerate("GetInstances", native.MaxInstanceNameChars)
}

// enumerate runs a fixed-width row enumeration entry point through the
// buffer negotiation and decodes the rows.
func (a *API) enumerate(op string, width int) ([]string, error) {
	p, err := native.Resolve[enumerateFn](a.binding, op)
	if err != nil {
		return nil, a.wrap(op, err)
	}

	var buf []uint16
	n, err := native.Negotiate(p.Name, native.DefaultEnumEntries, func(capacity uint32) (native.Status, uint32) {
		buf = make([]uint16, int(capacity)*width)
		count := capacity
		st := p.Fn(&buf[0], &count)
		return st, count
	})
	if err != nil {
		return nil, a.wrap(op, err)
	}
	return decodeRows(buf, width, n), nil
}

// StartInstance starts an instance and returns the connection endpoint to
// reach it.
func (a *API) StartInstance(name string) (string, error) {
	p, err := native.Resolve[startInstanceFn](a.binding, "StartInstance")
	if err != nil {
		return "", a.wrap("StartInstance", err)
	}

	wn := native.Wide(name)
	var buf []uint16
	n, err := native.Negotiate(p.Name, native.ConnectionStringChars, func(capacity uint32) (native.Status, uint32) {
		buf = make([]uint16, capacity)
		count := capacity
		st := p.Fn(&wn[0], 0, &buf[0], &count)
		return st, count
	})
	if err != nil {
		return "", a.wrap("StartInstance", err)
	}
	if n > uint32(len(buf)) {
		n = uint32(len(buf))
	}
	return native.TrimWide(buf[:n]), nil
}

// Stop-mode flags of the native StopInstance entry point.
const (
	stopKillProcess uint32 = 0x1
	stopNoWait      uint32 = 0x2
)

// StopOptions control how StopInstance shuts an instance down.
type StopOptions struct {
	// KillProcess forcibly terminates the instance process instead of
	// requesting a clean shutdown.
	KillProcess bool
	// NoWait issues the shutdown request without waiting for completion.
	NoWait bool
	// Timeout is how long the native side waits for the shutdown. It is a
	// native-side wait budget, not a cancellation token: it is rounded up
	// to whole seconds and passed through. Zero means fire and forget.
	Timeout time.Duration
}

// StopInstance stops a running instance.
func (a *API) StopInstance(name string, opts StopOptions) error {
	var flags uint32
	if opts.KillProcess {
		flags |= stopKillProcess
	}
	if opts.NoWait {
		flags |= stopNoWait
	}
	var seconds uint32
	if opts.Timeout > 0 {
		seconds = uint32((opts.Timeout + time.Second - 1) / time.Second)
	}

	wn := native.Wide(name)
	return status(a, "StopInstance", func(fn stopInstanceFn) native.Status {
		return fn(&wn[0], flags, seconds)
	})
}

// decodeRows splits a fixed-width row buffer into n trimmed strings.
func decodeRows(buf []uint16, width int, n uint32) []string {
	out := make([]string, 0, n)
	for i := 0; i < int(n) && (i+1)*width <= len(buf); i++ {
		out = append(out, native.TrimWide(buf[i*width:(i+1)*width]))
	}
	return out
}
