package dcontext

import "context"

type versionKey struct{}

func (versionKey) String() string { return "version" }

// WithVersion attaches a version string, typically the running
// binary's build version, to ctx so it can be logged or compared
// downstream without being threaded through every call explicitly.
func WithVersion(ctx context.Context, version string) context.Context {
	ctx = context.WithValue(ctx, versionKey{}, version)

	// Bind the version into the logger, consistent with how request id
	// and other ambient fields are made visible on every log line
	// derived from this context.
	logger := GetLogger(ctx, versionKey{})
	return WithLogger(ctx, logger)
}

// GetVersion returns the version attached by WithVersion, or "" if
// none was attached.
func GetVersion(ctx context.Context) string {
	return GetStringValue(ctx, versionKey{})
}
