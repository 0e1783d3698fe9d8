package ctxdata

import (
	"context"
)

type traceIDKey struct{}
type usernameKey struct{}

var (
	traceIDKeyInstance  = traceIDKey{}
	usernameKeyInstance = usernameKey{}
)

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKeyInstance, traceID)
}

func GetTraceID(ctx context.Context) (string, bool) {
	v := ctx.Value(traceIDKeyInstance)
	traceID, ok := v.(string)
	return traceID, ok
}

// WithUsername stores the caller's already-resolved username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKeyInstance, username)
}

func GetUsername(ctx context.Context) (string, bool) {
	v := ctx.Value(usernameKeyInstance)
	username, ok := v.(string)
	return username, ok && username != ""
}
