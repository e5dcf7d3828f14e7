package dcontext

import "context"

type backendRootKey struct{}

func (backendRootKey) String() string { return "backendRoot" }

// WithBackendRoot attaches the backend root URL a store was opened
// against to ctx, so it shows up in every log line derived from ctx
// without threading it through every call explicitly.
func WithBackendRoot(ctx context.Context, root string) context.Context {
	return context.WithValue(ctx, backendRootKey{}, root)
}

// GetBackendRoot returns the backend root URL attached by
// WithBackendRoot, or "" if none was attached.
func GetBackendRoot(ctx context.Context) string {
	return GetStringValue(ctx, backendRootKey{})
}
