package sqlinst

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/sqlinst/sqlinst-go/internal/discovery"
	"github.com/sqlinst/sqlinst-go/internal/native"
)

const testRoot = `SOFTWARE\Test\Installed Versions`

// Status codes the fake native API hands back.
const (
	stUnknownVersion     native.Status = 0x89C50103
	stUnknownInstance    native.Status = 0x89C50107
	stInstanceNotRunning native.Status = 0x89C50109
	stNotShared          native.Status = 0x89C5010A
	stUnknownMessage     native.Status = 0x89C5010D
	stInstanceExists     native.Status = 0x89C5010F
)

const testOwnerSID = "S-1-5-21-1004336348-1177238915-682003330-512"

// readWide decodes a NUL-terminated UTF-16 string from a caller pointer.
func readWide(p *uint16) string {
	if p == nil {
		return ""
	}
	var out []uint16
	for i := 0; ; i++ {
		c := *(*uint16)(unsafe.Add(unsafe.Pointer(p), i*2))
		if c == 0 {
			break
		}
		out = append(out, c)
	}
	return string(utf16.Decode(out))
}

// writeWideBuf fills a caller-provided buffer with a NUL-terminated UTF-16
// string, the way the native side does.
func writeWideBuf(p *uint16, capacity uint32, s string) uint32 {
	enc := utf16.Encode([]rune(s))
	dst := unsafe.Slice(p, capacity)
	n := copy(dst, enc)
	if uint32(n) < capacity {
		dst[n] = 0
	}
	return uint32(n)
}

func copyWideField(dst []uint16, s string) {
	n := copy(dst, utf16.Encode([]rune(s)))
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}

type fakeInstance struct {
	version    string
	running    bool
	shared     bool
	sharedName string
	connection string
	lastStart  int64
}

// fakeNative emulates the native user-instance library behind the Loader
// seam: symbol resolution, the buffer protocol, and per-entry-point status
// codes, with counters for the properties the tests assert.
type fakeNative struct {
	mu        sync.Mutex
	versions  []string
	instances map[string]*fakeInstance
	order     []string
	messages  map[native.Status]string
	missing   map[string]bool

	resolves  map[string]int
	procCalls map[string]int
	loads     int
	closes    int
	failLoad  error

	lastStopFlags   uint32
	lastStopSeconds uint32
	lastShareOwner  string
	lastOwnerNull   bool
	lastFormatFlags uint32
	lastLanguage    uint32
	traceOn         bool
}

func newFakeNative(versions ...string) *fakeNative {
	return &fakeNative{
		versions:  versions,
		instances: map[string]*fakeInstance{},
		messages: map[native.Status]string{
			stUnknownVersion:     "The specified version is not installed.",
			stUnknownInstance:    "The specified instance does not exist.",
			stInstanceNotRunning: "The specified instance is not running.",
			stNotShared:          "The specified instance is not shared.",
			stInstanceExists:     "An instance with this name already exists.",
		},
		missing:   map[string]bool{},
		resolves:  map[string]int{},
		procCalls: map[string]int{},
	}
}

func (f *fakeNative) Load(path string) (native.Library, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.failLoad != nil {
		return nil, f.failLoad
	}
	return &fakeLibrary{f: f}, nil
}

type fakeLibrary struct {
	f *fakeNative
}

func (l *fakeLibrary) Close() error {
	l.f.mu.Lock()
	defer l.f.mu.Unlock()
	l.f.closes++
	return nil
}

func (l *fakeLibrary) Bind(name string, fn any) error {
	f := l.f
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolves[name]++
	if f.missing[name] {
		return fmt.Errorf("symbol %q not exported", name)
	}
	impl, ok := f.entryPoints()[name]
	if !ok {
		return fmt.Errorf("symbol %q not exported", name)
	}
	reflect.ValueOf(fn).Elem().Set(reflect.ValueOf(impl))
	return nil
}

// entryPoints maps symbol names to typed implementations matching the
// signatures the package binds.
func (f *fakeNative) entryPoints() map[string]any {
	return map[string]any{
		"CreateInstance":  createInstanceFn(f.createInstance),
		"DeleteInstance":  deleteInstanceFn(f.deleteInstance),
		"GetInstances":    enumerateFn(f.getInstances),
		"GetVersions":     enumerateFn(f.getVersions),
		"GetInstanceInfo": instanceInfoFn(f.getInstanceInfo),
		"GetVersionInfo":  versionInfoFn(f.getVersionInfo),
		"StartInstance":   startInstanceFn(f.startInstance),
		"StopInstance":    stopInstanceFn(f.stopInstance),
		"ShareInstance":   shareInstanceFn(f.shareInstance),
		"UnshareInstance": unshareInstanceFn(f.unshareInstance),
		"StartTracing":    tracingFn(f.startTracing),
		"StopTracing":     tracingFn(f.stopTracing),
		"FormatMessage":   f.formatMessage,
	}
}

// enter takes the fake's lock and bumps the per-entry-point call counter;
// the returned func releases the lock.
func (f *fakeNative) enter(name string) func() {
	f.mu.Lock()
	f.procCalls[name]++
	return f.mu.Unlock
}

func (f *fakeNative) hasVersion(v string) bool {
	for _, have := range f.versions {
		if have == v {
			return true
		}
	}
	return false
}

func (f *fakeNative) createInstance(version, name *uint16, flags uint32) native.Status {
	defer f.enter("CreateInstance")()
	v, n := readWide(version), readWide(name)
	if !f.hasVersion(v) {
		return stUnknownVersion
	}
	if _, ok := f.instances[n]; ok {
		return stInstanceExists
	}
	f.instances[n] = &fakeInstance{version: v}
	f.order = append(f.order, n)
	return native.StatusOK
}

func (f *fakeNative) deleteInstance(name *uint16, flags uint32) native.Status {
	defer f.enter("DeleteInstance")()
	n := readWide(name)
	if _, ok := f.instances[n]; !ok {
		return stUnknownInstance
	}
	delete(f.instances, n)
	for i, have := range f.order {
		if have == n {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return native.StatusOK
}

func (f *fakeNative) enumerate(buf *uint16, count *uint32, entries []string, width int) native.Status {
	n := uint32(len(entries))
	if *count < n {
		*count = n
		return native.StatusInsufficientBuffer
	}
	dst := unsafe.Slice(buf, int(*count)*width)
	for i, name := range entries {
		copyWideField(dst[i*width:(i+1)*width], name)
	}
	*count = n
	return native.StatusOK
}

func (f *fakeNative) getInstances(buf *uint16, count *uint32) native.Status {
	defer f.enter("GetInstances")()
	return f.enumerate(buf, count, f.order, native.MaxInstanceNameChars)
}

func (f *fakeNative) getVersions(buf *uint16, count *uint32) native.Status {
	defer f.enter("GetVersions")()
	return f.enumerate(buf, count, f.versions, native.MaxVersionChars)
}

func versionParts(v string) (parts [4]uint32) {
	for i, seg := range strings.SplitN(v, ".", 4) {
		n, err := strconv.ParseUint(seg, 10, 32)
		if err != nil {
			break
		}
		parts[i] = uint32(n)
	}
	return parts
}

func (f *fakeNative) getInstanceInfo(name *uint16, rec *instanceInfoRecord, size uint32) native.Status {
	defer f.enter("GetInstanceInfo")()
	n := readWide(name)
	*rec = instanceInfoRecord{Size: size}
	copyWideField(rec.Name[:], n)

	inst, ok := f.instances[n]
	if !ok {
		return native.StatusOK // unknown names report Exists=false, not an error
	}
	rec.Exists = 1
	parts := versionParts(inst.version)
	rec.Major, rec.Minor, rec.Build, rec.Revision = parts[0], parts[1], parts[2], parts[3]
	if inst.running {
		rec.Running = 1
		rec.LastStart = inst.lastStart
		copyWideField(rec.Connection[:], inst.connection)
	}
	if inst.shared {
		rec.Shared = 1
		copyWideField(rec.SharedName[:], inst.sharedName)
	}
	copyWideField(rec.OwnerSID[:], testOwnerSID)
	return native.StatusOK
}

func (f *fakeNative) getVersionInfo(version *uint16, rec *versionInfoRecord, size uint32) native.Status {
	defer f.enter("GetVersionInfo")()
	v := readWide(version)
	*rec = versionInfoRecord{Size: size}
	copyWideField(rec.Version[:], v)
	if f.hasVersion(v) {
		rec.Exists = 1
		parts := versionParts(v)
		rec.Major, rec.Minor, rec.Build, rec.Revision = parts[0], parts[1], parts[2], parts[3]
	}
	return native.StatusOK
}

func (f *fakeNative) startInstance(name *uint16, flags uint32, conn *uint16, count *uint32) native.Status {
	defer f.enter("StartInstance")()
	n := readWide(name)
	inst, ok := f.instances[n]
	if !ok {
		return stUnknownInstance
	}
	endpoint := `np:\\.\pipe\` + n + `\tsql\query`
	need := uint32(len(utf16.Encode([]rune(endpoint))) + 1)
	if *count < need {
		*count = need
		return native.StatusInsufficientBuffer
	}
	*count = writeWideBuf(conn, *count, endpoint)
	inst.running = true
	inst.connection = endpoint
	inst.lastStart = time.Now().UTC().UnixNano()/100 + windowsEpochDelta
	return native.StatusOK
}

func (f *fakeNative) stopInstance(name *uint16, flags, seconds uint32) native.Status {
	defer f.enter("StopInstance")()
	n := readWide(name)
	f.lastStopFlags = flags
	f.lastStopSeconds = seconds
	inst, ok := f.instances[n]
	if !ok {
		return stUnknownInstance
	}
	if !inst.running {
		return stInstanceNotRunning
	}
	inst.running = false
	inst.connection = ""
	return native.StatusOK
}

func (f *fakeNative) shareInstance(owner, name, sharedName *uint16, flags uint32) native.Status {
	defer f.enter("ShareInstance")()
	f.lastOwnerNull = owner == nil
	f.lastShareOwner = readWide(owner)
	n := readWide(name)
	inst, ok := f.instances[n]
	if !ok {
		return stUnknownInstance
	}
	inst.shared = true
	inst.sharedName = readWide(sharedName)
	return native.StatusOK
}

func (f *fakeNative) unshareInstance(name *uint16, flags uint32) native.Status {
	defer f.enter("UnshareInstance")()
	n := readWide(name)
	inst, ok := f.instances[n]
	if !ok {
		return stUnknownInstance
	}
	if !inst.shared {
		return stNotShared
	}
	inst.shared = false
	inst.sharedName = ""
	return native.StatusOK
}

func (f *fakeNative) startTracing() native.Status {
	defer f.enter("StartTracing")()
	f.traceOn = true
	return native.StatusOK
}

func (f *fakeNative) stopTracing() native.Status {
	defer f.enter("StopTracing")()
	f.traceOn = false
	return native.StatusOK
}

func (f *fakeNative) formatMessage(code native.Status, flags, language uint32, buf *uint16, count *uint32) native.Status {
	defer f.enter("FormatMessage")()
	f.lastFormatFlags = flags
	f.lastLanguage = language
	msg, ok := f.messages[code]
	if !ok {
		return stUnknownMessage
	}
	need := uint32(len(utf16.Encode([]rune(msg))) + 1)
	if *count < need {
		*count = need
		return native.StatusInsufficientBuffer
	}
	*count = writeWideBuf(buf, *count, msg)
	return native.StatusOK
}

// counters returns a snapshot under the lock.
func (f *fakeNative) calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.procCalls[name]
}

func (f *fakeNative) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

// installVersions registers every fake version in the store with a real file
// on disk behind the install path.
func installVersions(t *testing.T, ms *MemStore, versions ...string) {
	t.Helper()
	dir := t.TempDir()
	ms.SetKey(testRoot, nil)
	for _, v := range versions {
		path := filepath.Join(dir, "instapi-"+v+".dll")
		require.NoError(t, os.WriteFile(path, []byte("stub"), 0o644))
		ms.SetKey(testRoot+`\`+v, map[string]string{discovery.PathValueName: path})
	}
}

// newTestAPI wires an API over the fake native library and an in-memory
// store holding the fake's versions.
func newTestAPI(t *testing.T, opts ...Option) (*API, *fakeNative) {
	t.Helper()
	f := newFakeNative("11.0", "12.0")
	ms := NewMemStore()
	installVersions(t, ms, f.versions...)
	base := []Option{
		WithConfigStore(ms),
		WithConfigRoot(testRoot),
		WithLoader(f),
	}
	api := New(append(base, opts...)...)
	t.Cleanup(func() { _ = api.Close() })
	return api, f
}

var errLoadRefused = errors.New("access denied")
