package mongo

import (
	"context"
	"fmt"

	apperrors "hotelms/pkg/errors"

	"go.mongodb.org/mongo-driver/mongo"
)

type TransactionFunc func(ctx mongo.SessionContext) error

// TransactionManager runs a unit of work that spans several collections.
type TransactionManager interface {
	ExecuteTransaction(ctx context.Context, fn TransactionFunc) error
}

type mongoTransactionManager struct {
	client        *mongo.Client
	transactional bool
}

// NewTransactionManager returns a manager that wraps fn in a multi-document
// transaction. With transactional=false (standalone servers, which reject
// transactions) fn still runs inside a session but each write commits on its
// own.
func NewTransactionManager(client *mongo.Client, transactional bool) TransactionManager {
	return &mongoTransactionManager{
		client:        client,
		transactional: transactional,
	}
}

func (m *mongoTransactionManager) ExecuteTransaction(ctx context.Context, fn TransactionFunc) error {
	session, err := m.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	if !m.transactional {
		err = fn(mongo.NewSessionContext(ctx, session))
	} else {
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
			return nil, fn(sessCtx)
		})
	}

	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
