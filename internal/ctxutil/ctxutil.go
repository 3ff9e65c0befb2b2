package ctxutil

import (
	"context"
	"time"
)

// private key type to avoid collisions
type key int

const (
	keyOpName key = iota
	keyUserID
)

// WithOp tags the context with an operation name for logs.
func WithOp(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, keyOpName, name)
}

func Op(ctx context.Context) (string, bool) {
	v := ctx.Value(keyOpName)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// WithUserID carries the logged-in identity through request handling.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, keyUserID, userID)
}

func UserID(ctx context.Context) (string, bool) {
	v := ctx.Value(keyUserID)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// DefaultStoreTimeout bounds one load or save against the backend.
var DefaultStoreTimeout = 5 * time.Second

// WithStoreTimeout derives the standard storage deadline, keeping the
// parent's remaining time when it is shorter.
func WithStoreTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	if dl, ok := parent.Deadline(); ok {
		remain := time.Until(dl)
		if remain < DefaultStoreTimeout {
			return context.WithTimeout(parent, remain)
		}
	}
	return context.WithTimeout(parent, DefaultStoreTimeout)
}
