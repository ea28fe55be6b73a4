package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

type Type string

const (
	TypePersonal  Type = "PERSONAL"
	TypeHome      Type = "HOME"
	TypeAuto      Type = "AUTO"
	TypeEducation Type = "EDUCATION"
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusClosed    Status = "CLOSED"
	StatusDefaulted Status = "DEFAULTED"
)

// KnownStatus reports whether s is one of the recognized status values.
func KnownStatus(s Status) bool {
	switch s {
	case StatusActive, StatusClosed, StatusDefaulted:
		return true
	}
	return false
}

type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"id"`
	UserID           uint64          `gorm:"index:idx_loans_user_id" json:"user_id"`
	LoanNumber       string          `gorm:"size:16;uniqueIndex:ux_loans_loan_number" json:"loan_number"`
	LoanType         Type            `gorm:"size:16" json:"loan_type"`
	LoanAmount       decimal.Decimal `gorm:"type:decimal(18,2)" json:"loan_amount"`
	InterestRate     decimal.Decimal `gorm:"type:decimal(6,2)" json:"interest_rate"`
	TenureMonths     int             `gorm:"column:tenure_months" json:"tenure_months"`
	StartDate        time.Time       `gorm:"type:date" json:"start_date"`
	EndDate          time.Time       `gorm:"type:date" json:"end_date"`
	RemainingBalance decimal.Decimal `gorm:"type:decimal(18,2)" json:"remaining_balance"`
	LoanStatus       Status          `gorm:"type:enum('ACTIVE','CLOSED','DEFAULTED');default:'ACTIVE'" json:"loan_status"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
