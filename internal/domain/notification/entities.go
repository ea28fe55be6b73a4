package notification

import "github.com/shopspring/decimal"

// Topic is the single channel topic all loan notifications go to,
// keyed per event kind.
const Topic = "loan-service-topic"

type EventKind string

const (
	KindLoanIssued         EventKind = "loan_issued"
	KindLoanStatusUpdated  EventKind = "loan_status_updated"
	KindLoanRepaid         EventKind = "loan_repaid"
	KindLoanDetailsUpdated EventKind = "loan_details_updated"
)

// Notification is the flat wire projection of a loan snapshot sent to
// external consumers.
type Notification struct {
	ID               uint64          `json:"id"`
	UserID           uint64          `json:"user_id"`
	LoanNumber       string          `json:"loan_number"`
	LoanType         string          `json:"loan_type"`
	LoanAmount       decimal.Decimal `json:"loan_amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	LoanStatus       string          `json:"loan_status"`
}
