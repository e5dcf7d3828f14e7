package dcontext

import "context"

// Background returns a non-nil, empty context, provided for symmetry
// with the package's With* constructors so callers never need to reach
// for the stdlib context package directly just to start a chain.
func Background() context.Context {
	return context.Background()
}
