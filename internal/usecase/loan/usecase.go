package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "bank-loans-service/internal/domain/loan"
	"bank-loans-service/internal/domain/notification"
	"bank-loans-service/pkg/id"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxLoanNumberAttempts bounds regeneration when the store reports a
// loan-number uniqueness violation.
const maxLoanNumberAttempts = 5

// Dispatcher hands a committed loan snapshot to the event channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind notification.EventKind, l *domain.Loan) error
}

type Usecase struct {
	repo   domain.Repository
	events Dispatcher
	log    *zap.Logger
}

func NewUsecase(r domain.Repository, d Dispatcher, log *zap.Logger) *Usecase {
	return &Usecase{repo: r, events: d, log: log}
}

type IssueInput struct {
	UserID       uint64
	LoanType     domain.Type
	LoanAmount   decimal.Decimal
	InterestRate *decimal.Decimal
	TenureMonths int
}

type UpdateInput struct {
	ID               uint64
	UserID           *uint64
	LoanNumber       *string
	LoanType         *domain.Type
	LoanAmount       *decimal.Decimal
	InterestRate     *decimal.Decimal
	TenureMonths     *int
	StartDate        *time.Time
	EndDate          *time.Time
	RemainingBalance *decimal.Decimal
	LoanStatus       *domain.Status
}

type LoanDTO struct {
	ID               uint64          `json:"id"`
	UserID           uint64          `json:"user_id"`
	LoanNumber       string          `json:"loan_number"`
	LoanType         string          `json:"loan_type"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	TenureMonths     int             `json:"tenure_months"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          time.Time       `json:"end_date"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	LoanStatus       string          `json:"loan_status"`
	CreatedAt        time.Time       `json:"created_at"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		ID:               l.ID,
		UserID:           l.UserID,
		LoanNumber:       l.LoanNumber,
		LoanType:         string(l.LoanType),
		LoanAmount:       l.LoanAmount,
		InterestRate:     l.InterestRate,
		TenureMonths:     l.TenureMonths,
		StartDate:        l.StartDate,
		EndDate:          l.EndDate,
		RemainingBalance: l.RemainingBalance,
		LoanStatus:       string(l.LoanStatus),
		CreatedAt:        l.CreatedAt,
	}
}

// Issue creates a new ACTIVE loan: loan number with bounded regeneration on
// uniqueness collision, dates from today, balance = principal + total
// interest. Emits loan_issued after the row is committed.
func (u *Usecase) Issue(ctx context.Context, in IssueInput) (*LoanDTO, error) {
	if !in.LoanAmount.IsPositive() {
		return nil, fmt.Errorf("%w: loan amount must be positive", domain.ErrInvalidInput)
	}
	if in.TenureMonths <= 0 {
		return nil, fmt.Errorf("%w: tenure months must be positive", domain.ErrInvalidInput)
	}
	if !domain.KnownType(in.LoanType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLoanType, in.LoanType)
	}

	rate := decimal.Decimal{}
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return nil, fmt.Errorf("%w: interest rate must not be negative", domain.ErrInvalidInput)
		}
		rate = *in.InterestRate
	} else {
		r, err := domain.DefaultRateForType(in.LoanType)
		if err != nil {
			return nil, err
		}
		rate = r
	}

	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	interest := domain.TotalInterest(in.LoanAmount, rate, in.TenureMonths)

	l := &domain.Loan{
		UserID:           in.UserID,
		LoanType:         in.LoanType,
		LoanAmount:       in.LoanAmount,
		InterestRate:     rate,
		TenureMonths:     in.TenureMonths,
		StartDate:        start,
		EndDate:          start.AddDate(0, in.TenureMonths, 0),
		RemainingBalance: domain.InitialBalance(in.LoanAmount, interest),
		LoanStatus:       domain.StatusActive,
	}

	created := false
	for attempt := 0; attempt < maxLoanNumberAttempts; attempt++ {
		l.LoanNumber = id.NewLoanNumber()
		err := u.repo.Create(ctx, l)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			u.log.Warn("loan number collision, regenerating",
				zap.String("loan_number", l.LoanNumber))
			continue
		}
		return nil, err
	}
	if !created {
		return nil, domain.ErrLoanNumberExhausted
	}

	u.notify(ctx, notification.KindLoanIssued, l)
	return toDTO(l), nil
}

// GetByUser returns the user's loans in store order. An empty result is
// valid; the engine performs no user existence check.
func (u *Usecase) GetByUser(ctx context.Context, userID uint64) ([]LoanDTO, error) {
	loans, err := u.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, *toDTO(&loans[i]))
	}
	return out, nil
}

// UpdateStatus overwrites the loan status unconditionally. Any recognized
// value is accepted regardless of the current state; this is a manual
// override path, not a state machine.
func (u *Usecase) UpdateStatus(ctx context.Context, loanID uint64, newStatus domain.Status) (*LoanDTO, error) {
	if !domain.KnownStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, newStatus)
	}

	var updated *domain.Loan
	err := u.repo.Tx(ctx, func(r domain.Repository) error {
		l, err := r.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		l.LoanStatus = newStatus
		if err := r.Save(ctx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notify(ctx, notification.KindLoanStatusUpdated, updated)
	return toDTO(updated), nil
}

// Repay applies a payment against the remaining balance. The balance is
// clamped at zero (overpayment is not carried as credit) and reaching zero
// closes the loan. Repaying an already settled loan is a no-op that returns
// the loan unchanged and emits nothing.
func (u *Usecase) Repay(ctx context.Context, loanID uint64, amount decimal.Decimal) (*LoanDTO, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment amount must be positive", domain.ErrInvalidInput)
	}

	var (
		current *domain.Loan
		mutated bool
	)
	err := u.repo.Tx(ctx, func(r domain.Repository) error {
		l, err := r.FindByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if l.RemainingBalance.IsPositive() {
			balance := l.RemainingBalance.Sub(amount)
			if !balance.IsPositive() {
				balance = decimal.Zero
				l.LoanStatus = domain.StatusClosed
			}
			l.RemainingBalance = balance
			if err := r.Save(ctx, l); err != nil {
				return err
			}
			mutated = true
		}
		current = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mutated {
		u.notify(ctx, notification.KindLoanRepaid, current)
	}
	return toDTO(current), nil
}

// UpdateDetails overwrites exactly the fields present in the input; absent
// (nil) fields are left untouched.
func (u *Usecase) UpdateDetails(ctx context.Context, in UpdateInput) (*LoanDTO, error) {
	if in.LoanType != nil && !domain.KnownType(*in.LoanType) {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedLoanType, *in.LoanType)
	}
	if in.LoanStatus != nil && !domain.KnownStatus(*in.LoanStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, *in.LoanStatus)
	}

	var updated *domain.Loan
	err := u.repo.Tx(ctx, func(r domain.Repository) error {
		l, err := r.FindByIDForUpdate(ctx, in.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		applyUpdate(l, in)
		if err := r.Save(ctx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.notify(ctx, notification.KindLoanDetailsUpdated, updated)
	return toDTO(updated), nil
}

func applyUpdate(l *domain.Loan, in UpdateInput) {
	if in.UserID != nil {
		l.UserID = *in.UserID
	}
	if in.LoanNumber != nil {
		l.LoanNumber = *in.LoanNumber
	}
	if in.LoanType != nil {
		l.LoanType = *in.LoanType
	}
	if in.LoanAmount != nil {
		l.LoanAmount = *in.LoanAmount
	}
	if in.InterestRate != nil {
		l.InterestRate = *in.InterestRate
	}
	if in.TenureMonths != nil {
		l.TenureMonths = *in.TenureMonths
	}
	if in.StartDate != nil {
		l.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		l.EndDate = *in.EndDate
	}
	if in.RemainingBalance != nil {
		l.RemainingBalance = *in.RemainingBalance
	}
	if in.LoanStatus != nil {
		l.LoanStatus = *in.LoanStatus
	}
}

// notify publishes after the store write has committed. A publish failure is
// surfaced in the log only; the mutation is never unwound for it.
func (u *Usecase) notify(ctx context.Context, kind notification.EventKind, l *domain.Loan) {
	if err := u.events.Dispatch(ctx, kind, l); err != nil {
		u.log.Warn("loan notification lost; store remains source of truth",
			zap.String("event_kind", string(kind)),
			zap.Uint64("loan_id", l.ID),
			zap.Error(err))
	}
}
