package gateway

import "context"

type idempotencyKeyCtx struct{}

// WithIdempotencyKey attaches the key sent as the Idempotency-Key header.
// Retries of one logical call reuse it.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, idempotencyKeyCtx{}, key)
}

func IdempotencyKeyFrom(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(idempotencyKeyCtx{}).(string)
	return key, ok && key != ""
}
