package dcontext

import (
	"context"
	"runtime"
	"time"

	"github.com/batchvault/batchvault/internal/uuid"
)

// WithTrace allocates a unique id for the calling function, captures
// its file, line and name, and attaches them to ctx under the
// "trace.*" keys. If ctx already carries a trace id, it is carried
// forward as "trace.parent.id" so nested traces can be correlated in
// logs. The returned done function should be deferred; it logs the
// elapsed time and an optional closing message.
func WithTrace(ctx context.Context) (context.Context, func(format string, args ...interface{})) {
	if parentID := ctx.Value("trace.id"); parentID != nil {
		ctx = context.WithValue(ctx, "trace.parent.id", parentID)
	}

	pc, file, line, _ := runtime.Caller(1)
	f := runtime.FuncForPC(pc)

	ctx = context.WithValue(ctx, "trace.id", uuid.NewString())
	ctx = context.WithValue(ctx, "trace.file", file)
	ctx = context.WithValue(ctx, "trace.line", line)
	ctx = context.WithValue(ctx, "trace.func", f.Name())

	start := time.Now()
	ctx = context.WithValue(ctx, "trace.start", start)

	keys := []interface{}{"trace.id", "trace.file", "trace.line", "trace.func"}
	if ctx.Value("trace.parent.id") != nil {
		keys = append(keys, "trace.parent.id")
	}
	logger := GetLogger(ctx, keys...)
	logger.Debugf("%s enter", f.Name())

	return ctx, func(format string, args ...interface{}) {
		logger.Debugf(format, args...)
		logger.Debugf("%s exit, elapsed %s", f.Name(), time.Since(start))
	}
}
