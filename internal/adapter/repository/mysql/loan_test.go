package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "bank-loans-service/internal/domain/loan"
	"bank-loans-service/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SQLite-friendly schema only for tests (no ENUM, money as text).

type loanSQLite struct {
	ID               uint64    `gorm:"primaryKey;column:id"`
	UserID           uint64    `gorm:"column:user_id"`
	LoanNumber       string    `gorm:"column:loan_number;uniqueIndex"`
	LoanType         string    `gorm:"column:loan_type"`
	LoanAmount       string    `gorm:"column:loan_amount"`
	InterestRate     string    `gorm:"column:interest_rate"`
	TenureMonths     int       `gorm:"column:tenure_months"`
	StartDate        time.Time `gorm:"column:start_date"`
	EndDate          time.Time `gorm:"column:end_date"`
	RemainingBalance string    `gorm:"column:remaining_balance"`
	LoanStatus       string    `gorm:"column:loan_status"`
	CreatedAt        time.Time `gorm:"column:created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (loanSQLite) TableName() string { return "loans" }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Migrate the sqlite-safe model, not the domain model.
	if err := db.AutoMigrate(&loanSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLoan(t *testing.T, userID uint64) *domain.Loan {
	t.Helper()
	start := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	return &domain.Loan{
		UserID:           userID,
		LoanNumber:       id.NewLoanNumber(),
		LoanType:         domain.TypePersonal,
		LoanAmount:       decimal.RequireFromString("12000"),
		InterestRate:     decimal.RequireFromString("12.00"),
		TenureMonths:     12,
		StartDate:        start,
		EndDate:          start.AddDate(0, 12, 0),
		RemainingBalance: decimal.RequireFromString("13440.00"),
		LoanStatus:       domain.StatusActive,
	}
}

func TestCreateAndFindByID(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(t, 7)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.ID == 0 {
		t.Fatal("Create did not assign an id")
	}

	got, err := repo.FindByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.LoanNumber != l.LoanNumber || got.UserID != 7 {
		t.Fatalf("got %+v", got)
	}
	if !got.RemainingBalance.Equal(decimal.RequireFromString("13440.00")) {
		t.Fatalf("balance=%s", got.RemainingBalance)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	_, err := repo.FindByID(context.Background(), 12345)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestFindByUserID_OrderAndEmpty(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	first := makeLoan(t, 3)
	second := makeLoan(t, 3)
	other := makeLoan(t, 4)
	for _, l := range []*domain.Loan{first, second, other} {
		if err := repo.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	got, err := repo.FindByUserID(ctx, 3)
	if err != nil {
		t.Fatalf("FindByUserID: %v", err)
	}
	if len(got) != 2 || got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("got %d rows, order %v", len(got), got)
	}

	empty, err := repo.FindByUserID(ctx, 999)
	if err != nil {
		t.Fatalf("FindByUserID empty: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("want empty, got %d", len(empty))
	}
}

func TestCreate_DuplicateLoanNumber(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(t, 1)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	dup := makeLoan(t, 2)
	dup.LoanNumber = l.LoanNumber
	err := repo.Create(ctx, dup)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("err=%v, want gorm.ErrDuplicatedKey", err)
	}
}

func TestSave_PersistsMutation(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(t, 5)
	if err := repo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	l.RemainingBalance = decimal.Zero
	l.LoanStatus = domain.StatusClosed
	if err := repo.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.FindByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.LoanStatus != domain.StatusClosed || !got.RemainingBalance.IsZero() {
		t.Fatalf("got status=%s balance=%s", got.LoanStatus, got.RemainingBalance)
	}
}

func TestTx_RollsBackOnError(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))
	ctx := context.Background()

	l := makeLoan(t, 6)
	boom := errors.New("boom")
	err := repo.Tx(ctx, func(r domain.Repository) error {
		if err := r.Create(ctx, l); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v", err)
	}

	if _, err := repo.FindByID(ctx, l.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("row survived rollback: %v", err)
	}
}
