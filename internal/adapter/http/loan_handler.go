package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	domain "bank-loans-service/internal/domain/loan"
	"bank-loans-service/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type issueLoanReq struct {
	UserID       uint64           `json:"user_id" validate:"required"`
	LoanType     string           `json:"loan_type" validate:"required,loantype"`
	LoanAmount   decimal.Decimal  `json:"loan_amount" validate:"-"`
	InterestRate *decimal.Decimal `json:"interest_rate" validate:"-"`
	TenureMonths int              `json:"tenure_months" validate:"required,gt=0"`
}

type updateLoanReq struct {
	ID               uint64           `json:"id" validate:"required"`
	UserID           *uint64          `json:"user_id"`
	LoanNumber       *string          `json:"loan_number"`
	LoanType         *string          `json:"loan_type"`
	LoanAmount       *decimal.Decimal `json:"loan_amount" validate:"-"`
	InterestRate     *decimal.Decimal `json:"interest_rate" validate:"-"`
	TenureMonths     *int             `json:"tenure_months"`
	StartDate        *time.Time       `json:"start_date"`
	EndDate          *time.Time       `json:"end_date"`
	RemainingBalance *decimal.Decimal `json:"remaining_balance" validate:"-"`
	LoanStatus       *string          `json:"loan_status"`
}

func (h *LoanHandler) IssueLoan(c echo.Context) error {
	var req issueLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Issue(c.Request().Context(), loan.IssueInput{
		UserID:       req.UserID,
		LoanType:     domain.Type(req.LoanType),
		LoanAmount:   req.LoanAmount,
		InterestRate: req.InterestRate,
		TenureMonths: req.TenureMonths,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoansByUser(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}
	dtos, err := h.uc.GetByUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	if len(dtos) == 0 {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "no loans found for user"})
	}
	return c.JSON(http.StatusOK, dtos)
}

func (h *LoanHandler) UpdateLoanStatus(c echo.Context) error {
	loanID, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	newStatus := c.QueryParam("newStatus")
	if newStatus == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing newStatus"})
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), loanID, domain.Status(newStatus))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) RepayLoan(c echo.Context) error {
	loanID, err := strconv.ParseUint(c.Param("loan_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid loan id"})
	}
	amount, err := decimal.NewFromString(c.QueryParam("paymentAmount"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid paymentAmount"})
	}
	dto, err := h.uc.Repay(c.Request().Context(), loanID, amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) UpdateLoan(c echo.Context) error {
	var req updateLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	in := loan.UpdateInput{
		ID:               req.ID,
		UserID:           req.UserID,
		LoanNumber:       req.LoanNumber,
		LoanAmount:       req.LoanAmount,
		InterestRate:     req.InterestRate,
		TenureMonths:     req.TenureMonths,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		RemainingBalance: req.RemainingBalance,
	}
	if req.LoanType != nil {
		t := domain.Type(*req.LoanType)
		in.LoanType = &t
	}
	if req.LoanStatus != nil {
		s := domain.Status(*req.LoanStatus)
		in.LoanStatus = &s
	}

	dto, err := h.uc.UpdateDetails(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// writeError maps engine failures onto responses without echoing internals:
// not-found -> 404, validation -> 400, everything else -> generic 500.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "loan not found"})
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedLoanType):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
