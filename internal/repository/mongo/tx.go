package mongo

import (
	"context"

	"github.com/guibitar/fit-flow-control-sub001/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// mongoTxRunner implements repository.TxRunner over MongoDB sessions.
// Repository calls made with the callback's context automatically join the
// transaction, so a failed step rolls back everything (check-in without its
// ledger entry can no longer happen).
type mongoTxRunner struct {
	client *mongo.Client
}

// NewTxRunner creates a TxRunner bound to a connected client. Requires the
// deployment to support transactions (replica set or sharded cluster).
func NewTxRunner(client *mongo.Client) repository.TxRunner {
	return &mongoTxRunner{client: client}
}

func (r *mongoTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}
