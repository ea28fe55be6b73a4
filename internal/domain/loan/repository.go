package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	FindByID(ctx context.Context, id uint64) (*Loan, error)
	// FindByIDForUpdate locks the loan row for the duration of the
	// surrounding transaction.
	FindByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	FindByUserID(ctx context.Context, userID uint64) ([]Loan, error)
	// Tx runs fn in a store transaction, passing a repo bound to the tx.
	Tx(ctx context.Context, fn func(repo Repository) error) error
}
