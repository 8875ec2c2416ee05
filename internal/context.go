package internal

import "context"

type ctxKey string

const ContextInvocationKey ctxKey = "invocationID"

func InvocationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(ContextInvocationKey).(string); ok {
		return id
	}
	return ""
}

func ContextWithInvocationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextInvocationKey, id)
}
