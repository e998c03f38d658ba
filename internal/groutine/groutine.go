package groutine

import (
	"context"
	"runtime/pprof"
)

type ctxKey string

const goroutineNameKey ctxKey = "goroutine_name"

// Go starts fn on a new goroutine labeled with name, so it shows up under
// that name in pprof goroutine dumps.
// Example usage:
//
//	groutine.Go(ctx, "bridge:getBondedDevices", func(ctx context.Context) {
//	    // work
//	}, func(r any) {
//	    // fn panicked with r
//	})
//
// If parentCtx is nil, context.Background() is used. A panic in fn is
// recovered and handed to onPanic; with a nil onPanic it is re-raised.
func Go(parentCtx context.Context, name string, fn func(ctx context.Context), onPanic func(r any)) {
	if parentCtx == nil {
		parentCtx = context.Background()
	}

	labels := pprof.Labels("goroutine_name", name)

	go pprof.Do(parentCtx, labels, func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				if onPanic == nil {
					panic(r)
				}
				onPanic(r)
			}
		}()

		ctx = context.WithValue(ctx, goroutineNameKey, name)
		fn(ctx)
	})
}

// GetName retrieves the goroutine name from the context.
func GetName(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v := ctx.Value(goroutineNameKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
