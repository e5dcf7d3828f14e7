// Package base provides a base implementation of StorageDriver that
// centralizes path validation and concurrency limiting so individual
// drivers do not need to repeat it.
//
// The canonical approach is to embed Base in the exported driver struct:
//
//	type driver struct { ... internal ... }
//
//	type baseEmbed struct {
//		base.Base
//	}
//
//	type Driver struct {
//		baseEmbed
//	}
//
// Because Driver embeds baseEmbed embeds Base, it implements
// driver.StorageDriver by proxying through Base, without exporting an
// unnecessary field.
package base

import (
	"context"
	"io"

	storagedriver "github.com/batchvault/batchvault/store/driver"
)

// Base wraps a StorageDriver implementation, adding path validation
// ahead of every call.
type Base struct {
	storagedriver.StorageDriver
}

func (b *Base) GetContent(ctx context.Context, path string) ([]byte, error) {
	if !storagedriver.PathRegexp.MatchString(path) {
		return nil, storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.GetContent(ctx, path)
}

func (b *Base) PutContent(ctx context.Context, path string, content []byte) error {
	if !storagedriver.PathRegexp.MatchString(path) {
		return storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.PutContent(ctx, path, content)
}

func (b *Base) Reader(ctx context.Context, path string, offset int64) (io.ReadCloser, error) {
	if offset < 0 {
		return nil, storagedriver.InvalidOffsetError{Path: path, Offset: offset}
	}
	if !storagedriver.PathRegexp.MatchString(path) {
		return nil, storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.Reader(ctx, path, offset)
}

func (b *Base) Writer(ctx context.Context, path string, append bool) (storagedriver.FileWriter, error) {
	if !storagedriver.PathRegexp.MatchString(path) {
		return nil, storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.Writer(ctx, path, append)
}

func (b *Base) Stat(ctx context.Context, path string) (storagedriver.FileInfo, error) {
	if !storagedriver.PathRegexp.MatchString(path) {
		return nil, storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.Stat(ctx, path)
}

func (b *Base) List(ctx context.Context, path string) ([]string, error) {
	if !storagedriver.PathRegexp.MatchString(path) && path != "/" {
		return nil, storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.List(ctx, path)
}

func (b *Base) Move(ctx context.Context, sourcePath, destPath string) error {
	if !storagedriver.PathRegexp.MatchString(sourcePath) {
		return storagedriver.InvalidPathError{Path: sourcePath}
	}
	if !storagedriver.PathRegexp.MatchString(destPath) {
		return storagedriver.InvalidPathError{Path: destPath}
	}
	return b.StorageDriver.Move(ctx, sourcePath, destPath)
}

func (b *Base) Delete(ctx context.Context, path string) error {
	if !storagedriver.PathRegexp.MatchString(path) {
		return storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.Delete(ctx, path)
}

func (b *Base) URLFor(ctx context.Context, path string, options map[string]interface{}) (string, error) {
	if !storagedriver.PathRegexp.MatchString(path) {
		return "", storagedriver.InvalidPathError{Path: path}
	}
	return b.StorageDriver.URLFor(ctx, path, options)
}
