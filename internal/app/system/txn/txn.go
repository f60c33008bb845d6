// internal/app/system/txn/txn.go

// Package txn wraps the dual-write sequences (group members ⇄ user
// groupsJoined) in a MongoDB multi-document transaction where the
// deployment supports one. Standalone servers cannot run transactions, so
// the wrapper degrades to executing the writes sequentially there — the
// same consistency the original system offered everywhere.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a transaction when possible.
//
// fn must perform all reads and writes through the context it receives so
// they join the session. When transactions are unsupported, fn runs once
// with the original context.
func WithTransaction(ctx context.Context, client *mongo.Client, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		// No session support at all (old server); run the writes directly.
		return fn(ctx)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && isUnsupported(err) {
		return fn(ctx)
	}
	return err
}

// isUnsupported detects the server errors a standalone deployment raises
// when a transaction is attempted.
func isUnsupported(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Transaction numbers are only allowed") ||
		strings.Contains(msg, "does not support transactions") ||
		strings.Contains(msg, "IllegalOperation")
}
