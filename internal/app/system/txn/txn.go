// Package txn wraps the multi-document workflow writes (proposal
// submission, accept, reject) in a MongoDB transaction when the
// deployment supports one.
//
// Transactions require a replica set or mongos. On a standalone server
// the driver reports the attempt as unsupported; in that case the
// callback is re-run outside a transaction, which restores the plain
// sequential-write behavior (no rollback on partial failure). Callers
// therefore must write callbacks that are safe to run either way.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a session transaction, retrying it
// once without a transaction if the deployment does not support them.
// fn receives the session context and must pass it to every store call.
func WithTransaction(ctx context.Context, client *mongo.Client, logger *zap.Logger, fn func(ctx context.Context) error) error {
	sess, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			logger.Warn("transactions unsupported; running workflow without one", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		logger.Warn("transactions unsupported; running workflow without one", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, old wire version).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	if ce, ok := err.(mongo.CommandError); ok {
		switch ce.Code {
		case 20, 51, 263:
			// IllegalOperation / transaction numbers / API mismatch
			return true
		}
		return isNotSupportedMessage(ce.Message)
	}

	return isNotSupportedMessage(err.Error())
}

func isNotSupportedMessage(msg string) bool {
	s := strings.ToLower(msg)
	if strings.Contains(s, "illegal operation") {
		return true
	}
	if strings.Contains(s, "transaction") &&
		(strings.Contains(s, "replica set") || strings.Contains(s, "session")) {
		return true
	}
	if strings.Contains(s, "session") && strings.Contains(s, "not supported") {
		return true
	}
	return false
}
