package domain

import "context"

// TransactionManager runs a function inside a single database transaction.
// The transaction travels in the context; repositories participating in it
// must resolve their executor from the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
