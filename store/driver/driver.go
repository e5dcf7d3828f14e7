// Package driver defines the interface that every blob backend must
// satisfy: an opaque key-to-bytes store addressable by URL. The object
// store (package objectstore) and the catalog it wraps never reach past
// this interface, so any backend that implements it -- filesystem,
// in-memory, or a future object-storage driver -- can stand in for
// another without touching the layers above it.
package driver

import (
	"context"
	"fmt"
	"io"
	"regexp"
)

// StorageDriver is a filesystem-like key/value store for blob content.
// Implementations are registered with package factory under a URL scheme
// name (e.g. "hfs", "memory") and selected at Open time.
type StorageDriver interface {
	// Name returns the human-readable name of the driver, used for
	// diagnostics and for matching against a configured scheme.
	Name() string

	// GetContent retrieves the content stored at "path" as a []byte.
	// This should primarily be used for small objects.
	GetContent(ctx context.Context, path string) ([]byte, error)

	// PutContent stores the []byte content at a location designated by
	// "path". Overwriting an existing path is permitted at this layer;
	// immutability is enforced by the catalog above it.
	PutContent(ctx context.Context, path string, content []byte) error

	// Reader retrieves an io.ReadCloser for the content stored at "path"
	// with a given byte offset.
	Reader(ctx context.Context, path string, offset int64) (io.ReadCloser, error)

	// Writer returns a FileWriter which can be used to write to the
	// file at path. If append is false, existing content is truncated.
	Writer(ctx context.Context, path string, append bool) (FileWriter, error)

	// Stat retrieves the FileInfo for the given path.
	Stat(ctx context.Context, path string) (FileInfo, error)

	// List returns a list of the objects that are direct descendants of
	// the given path.
	List(ctx context.Context, path string) ([]string, error)

	// Move moves an object stored at sourcePath to destPath, removing
	// the original object.
	Move(ctx context.Context, sourcePath string, destPath string) error

	// Delete recursively deletes all objects stored at "path" and its
	// subpaths.
	Delete(ctx context.Context, path string) error

	// URLFor returns a URL which addresses the content at path. For
	// backends with no natural external URL (e.g. filesystem), this is
	// typically a "<scheme>://<root>/<path>" string used only for
	// display and reload, not for direct fetching.
	URLFor(ctx context.Context, path string, options map[string]interface{}) (string, error)
}

// FileWriter is a handle for a streamed, resumable write.
type FileWriter interface {
	io.WriteCloser

	// Size returns the number of bytes written to this FileWriter.
	Size() int64

	// Cancel removes any written content and aborts the writer.
	Cancel(ctx context.Context) error

	// Commit flushes all content written to the FileWriter and makes it
	// available for future calls to StorageDriver.GetContent and
	// StorageDriver.Reader.
	Commit(ctx context.Context) error
}

// FileInfo describes a file or directory within the backend.
type FileInfo interface {
	// Path provides the full path of the target of this file info.
	Path() string

	// Size returns the size in bytes of the file, zero for directories.
	Size() int64

	// IsDir returns true if the path is a directory.
	IsDir() bool
}

// PathComponentRegexp is the regular expression which each key path
// component must match. Digest hex strings and their "_<n>" collision
// suffix both satisfy it.
var PathComponentRegexp = regexp.MustCompile(`[a-zA-Z0-9]+([._-]?[a-zA-Z0-9]+)*`)

// PathRegexp is the regular expression an absolute backend key path must
// match as a whole.
var PathRegexp = regexp.MustCompile(`^(/[a-zA-Z0-9]+([._-]?[a-zA-Z0-9]+)*)+$`)

// PathNotFoundError is returned when operating on a nonexistent path.
type PathNotFoundError struct {
	Path string
}

func (err PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", err.Path)
}

// InvalidPathError is returned when the provided path is malformed.
type InvalidPathError struct {
	Path string
}

func (err InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path: %s", err.Path)
}

// InvalidOffsetError is returned when attempting to read or write from an
// invalid offset.
type InvalidOffsetError struct {
	Path   string
	Offset int64
}

func (err InvalidOffsetError) Error() string {
	return fmt.Sprintf("invalid offset %d for path: %s", err.Offset, err.Path)
}

// Error wraps a driver-internal failure with the name of the driver that
// produced it, so a caller several layers up can tell which backend is
// misbehaving.
type Error struct {
	DriverName string
	Detail     error
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.DriverName, e.Detail)
}

func (e Error) Unwrap() error {
	return e.Detail
}
