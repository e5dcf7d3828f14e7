package dcontext

import "context"

// GetStringValue returns the string stored under key in ctx, or "" if
// key is absent or holds a non-string value. It is the small helper
// the typed string accessors (GetBackendRoot, GetVersion) are built on
// top of.
func GetStringValue(ctx context.Context, key interface{}) string {
	v, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return v
}
