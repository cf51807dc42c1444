package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context unchanged
// with a no-op cancel function, as we cannot wrap SessionContext without breaking
// transaction semantics.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithDeadline(ctx, deadline)
	}

	return context.WithTimeout(ctx, timeout)
}

// IsDuplicateKey reports whether err is a unique index violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
