// Package memory implements the "memory://" blob backend: an in-process
// map keyed by path. It is intended for tests and for the optional
// alternate backend used to receive bulk payloads without touching disk.
package memory

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	storagedriver "github.com/batchvault/batchvault/store/driver"
	"github.com/batchvault/batchvault/store/driver/base"
	"github.com/batchvault/batchvault/store/driver/factory"
)

const driverName = "memory"

func init() {
	factory.Register(driverName, &memoryDriverFactory{})
}

type memoryDriverFactory struct{}

// registry lets multiple Create calls naming the same instance ("name"
// parameter, taken from the host segment of a "memory://<name>/" URL)
// share one backing map, so a store can be closed and reopened against
// the same in-process backend within a single test or process lifetime.
// An empty or absent name always yields a fresh, isolated instance.
var registry = struct {
	mu     sync.Mutex
	byName map[string]*Driver
}{byName: make(map[string]*Driver)}

func (memoryDriverFactory) Create(parameters map[string]interface{}) (storagedriver.StorageDriver, error) {
	name, _ := parameters["name"].(string)
	if name == "" {
		return New(), nil
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()
	if d, ok := registry.byName[name]; ok {
		return d, nil
	}
	d := New()
	registry.byName[name] = d
	return d, nil
}

type entry struct {
	content []byte
	modTime time.Time
}

type driver struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type baseEmbed struct {
	base.Base
}

// Driver is a driver.StorageDriver implementation backed by a Go map.
// Content does not survive process exit.
type Driver struct {
	baseEmbed
}

// New constructs a new, empty Driver.
func New() *Driver {
	return &Driver{
		baseEmbed: baseEmbed{
			Base: base.Base{
				StorageDriver: &driver{entries: make(map[string]entry)},
			},
		},
	}
}

func (d *driver) Name() string { return driverName }

func (d *driver) GetContent(ctx context.Context, path string) ([]byte, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	e, ok := d.entries[path]
	if !ok {
		return nil, storagedriver.PathNotFoundError{Path: path}
	}
	out := make([]byte, len(e.content))
	copy(out, e.content)
	return out, nil
}

func (d *driver) PutContent(ctx context.Context, path string, content []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cp := make([]byte, len(content))
	copy(cp, content)
	d.entries[path] = entry{content: cp, modTime: time.Now()}
	return nil
}

func (d *driver) Reader(ctx context.Context, path string, offset int64) (io.ReadCloser, error) {
	content, err := d.GetContent(ctx, path)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset > int64(len(content)) {
		return nil, storagedriver.InvalidOffsetError{Path: path, Offset: offset}
	}
	return io.NopCloser(strings.NewReader(string(content[offset:]))), nil
}

func (d *driver) Writer(ctx context.Context, path string, append bool) (storagedriver.FileWriter, error) {
	var existing []byte
	if append {
		if content, err := d.GetContent(ctx, path); err == nil {
			existing = content
		}
	}
	return &memoryWriter{driver: d, path: path, buf: existing, size: int64(len(existing))}, nil
}

func (d *driver) Stat(ctx context.Context, path string) (storagedriver.FileInfo, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if e, ok := d.entries[path]; ok {
		return memFileInfo{path: path, size: int64(len(e.content))}, nil
	}

	prefix := strings.TrimSuffix(path, "/") + "/"
	for k := range d.entries {
		if strings.HasPrefix(k, prefix) {
			return memFileInfo{path: path, isDir: true}, nil
		}
	}

	return nil, storagedriver.PathNotFoundError{Path: path}
}

func (d *driver) List(ctx context.Context, path string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	prefix := strings.TrimSuffix(path, "/")
	if prefix != "" {
		prefix += "/"
	} else {
		prefix = "/"
	}

	seen := map[string]bool{}
	var out []string
	for k := range d.entries {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		child := prefix + strings.SplitN(rest, "/", 2)[0]
		if !seen[child] {
			seen[child] = true
			out = append(out, child)
		}
	}

	if len(out) == 0 {
		if _, err := d.Stat(ctx, path); err != nil {
			return nil, err
		}
	}

	sort.Strings(out)
	return out, nil
}

func (d *driver) Move(ctx context.Context, sourcePath, destPath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[sourcePath]
	if !ok {
		return storagedriver.PathNotFoundError{Path: sourcePath}
	}
	d.entries[destPath] = e
	delete(d.entries, sourcePath)
	return nil
}

func (d *driver) Delete(ctx context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	prefix := strings.TrimSuffix(path, "/") + "/"
	found := false
	for k := range d.entries {
		if k == path || strings.HasPrefix(k, prefix) {
			delete(d.entries, k)
			found = true
		}
	}
	if !found {
		return storagedriver.PathNotFoundError{Path: path}
	}
	return nil
}

func (d *driver) URLFor(ctx context.Context, path string, options map[string]interface{}) (string, error) {
	return "memory://" + path, nil
}

type memFileInfo struct {
	path  string
	size  int64
	isDir bool
}

func (fi memFileInfo) Path() string { return fi.path }
func (fi memFileInfo) Size() int64  { return fi.size }
func (fi memFileInfo) IsDir() bool  { return fi.isDir }

type memoryWriter struct {
	driver    *driver
	path      string
	buf       []byte
	size      int64
	closed    bool
	committed bool
	cancelled bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed || w.committed || w.cancelled {
		return 0, io.ErrClosedPipe
	}
	w.buf = append(w.buf, p...)
	w.size += int64(len(p))
	return len(p), nil
}

func (w *memoryWriter) Size() int64 { return w.size }

func (w *memoryWriter) Close() error {
	w.closed = true
	return nil
}

func (w *memoryWriter) Cancel(ctx context.Context) error {
	w.cancelled = true
	return nil
}

func (w *memoryWriter) Commit(ctx context.Context) error {
	if w.committed || w.cancelled {
		return io.ErrClosedPipe
	}
	w.committed = true
	return w.driver.PutContent(ctx, w.path, w.buf)
}
