package base

import (
	"context"
	"fmt"
	"io"

	storagedriver "github.com/batchvault/batchvault/store/driver"
)

// GetLimitFromParameter takes the value of a "maxthreads"-style driver
// parameter and validates it against the given bounds, falling back to
// def when the parameter is unset.
func GetLimitFromParameter(param interface{}, min, def uint64) (uint64, error) {
	limit := def

	switch v := param.(type) {
	case string:
		var parsed uint64
		if _, err := fmt.Sscanf(v, "%d", &parsed); err != nil {
			return 0, fmt.Errorf("parameter must be an integer, %q invalid", v)
		}
		limit = parsed
	case int:
		limit = uint64(v)
	case int64:
		limit = uint64(v)
	case uint64:
		limit = v
	case nil:
		return def, nil
	default:
		return 0, fmt.Errorf("invalid value %v, must be an integer", param)
	}

	if limit < min {
		return min, nil
	}
	return limit, nil
}

// regulator wraps a StorageDriver, bounding the number of concurrent
// operations in flight against it with a buffered channel used as a
// counting semaphore.
type regulator struct {
	storagedriver.StorageDriver
	limit chan struct{}
}

// NewRegulator returns a StorageDriver that limits concurrent calls into
// d to at most limit at a time.
func NewRegulator(d storagedriver.StorageDriver, limit uint64) storagedriver.StorageDriver {
	return &regulator{
		StorageDriver: d,
		limit:         make(chan struct{}, limit),
	}
}

func (r *regulator) enter() func() {
	r.limit <- struct{}{}
	return func() { <-r.limit }
}

func (r *regulator) GetContent(ctx context.Context, path string) ([]byte, error) {
	defer r.enter()()
	return r.StorageDriver.GetContent(ctx, path)
}

func (r *regulator) PutContent(ctx context.Context, path string, content []byte) error {
	defer r.enter()()
	return r.StorageDriver.PutContent(ctx, path, content)
}

func (r *regulator) Reader(ctx context.Context, path string, offset int64) (io.ReadCloser, error) {
	defer r.enter()()
	return r.StorageDriver.Reader(ctx, path, offset)
}

func (r *regulator) Writer(ctx context.Context, path string, append bool) (storagedriver.FileWriter, error) {
	defer r.enter()()
	return r.StorageDriver.Writer(ctx, path, append)
}

func (r *regulator) Stat(ctx context.Context, path string) (storagedriver.FileInfo, error) {
	defer r.enter()()
	return r.StorageDriver.Stat(ctx, path)
}

func (r *regulator) List(ctx context.Context, path string) ([]string, error) {
	defer r.enter()()
	return r.StorageDriver.List(ctx, path)
}

func (r *regulator) Move(ctx context.Context, sourcePath, destPath string) error {
	defer r.enter()()
	return r.StorageDriver.Move(ctx, sourcePath, destPath)
}

func (r *regulator) Delete(ctx context.Context, path string) error {
	defer r.enter()()
	return r.StorageDriver.Delete(ctx, path)
}
