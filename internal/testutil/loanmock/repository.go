package loanmock

import (
	"context"

	domain "bank-loans-service/internal/domain/loan"

	"gorm.io/gorm"
)

// Repo is a function-backed mock satisfying domain.Repository. Unset lookup
// functions report record-not-found; Tx defaults to running fn against the
// mock itself.
type Repo struct {
	CreateFn            func(ctx context.Context, l *domain.Loan) error
	SaveFn              func(ctx context.Context, l *domain.Loan) error
	FindByIDFn          func(ctx context.Context, id uint64) (*domain.Loan, error)
	FindByIDForUpdateFn func(ctx context.Context, id uint64) (*domain.Loan, error)
	FindByUserIDFn      func(ctx context.Context, userID uint64) ([]domain.Loan, error)
	TxFn                func(ctx context.Context, fn func(repo domain.Repository) error) error
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) FindByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.FindByIDForUpdateFn != nil {
		return m.FindByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) FindByUserID(ctx context.Context, userID uint64) ([]domain.Loan, error) {
	if m.FindByUserIDFn != nil {
		return m.FindByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) Tx(ctx context.Context, fn func(repo domain.Repository) error) error {
	if m.TxFn != nil {
		return m.TxFn(ctx, fn)
	}
	return fn(m)
}
