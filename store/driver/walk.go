package driver

import (
	"context"
	"errors"
	"sort"

	"github.com/sirupsen/logrus"
)

// ErrSkipDir is used as a return value from WalkFn to indicate that the
// directory named in the call is to be skipped. It is not returned as an
// error by any function.
var ErrSkipDir = errors.New("skip this directory")

// WalkFn is called once per file or directory by Walk.
type WalkFn func(fileInfo FileInfo) error

// Walk traverses a backend depth-first starting from "from", calling fn
// once per entry encountered. It drives itself using only List and Stat,
// so it works against any StorageDriver implementation without that
// implementation needing a native walk.
func Walk(ctx context.Context, d StorageDriver, from string, fn WalkFn) error {
	_, err := doWalk(ctx, d, from, fn)
	return err
}

func doWalk(ctx context.Context, d StorageDriver, from string, fn WalkFn) (bool, error) {
	children, err := d.List(ctx, from)
	if err != nil {
		return false, err
	}
	sort.Strings(children)

	for _, child := range children {
		fileInfo, err := d.Stat(ctx, child)
		if err != nil {
			switch err.(type) {
			case PathNotFoundError:
				logrus.WithField("path", child).Info("ignoring path removed during walk")
				continue
			default:
				return false, err
			}
		}

		err = fn(fileInfo)
		switch {
		case err == nil && fileInfo.IsDir():
			if ok, err := doWalk(ctx, d, child, fn); err != nil || !ok {
				return ok, err
			}
		case err == ErrSkipDir:
			// don't descend into this directory
		case err != nil:
			return false, err
		}
	}

	return true, nil
}
