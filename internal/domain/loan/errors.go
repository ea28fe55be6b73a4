package loan

import "errors"

var (
	ErrNotFound            = errors.New("loan not found")
	ErrInvalidInput        = errors.New("invalid loan input")
	ErrUnsupportedLoanType = errors.New("unsupported loan type")
	ErrLoanNumberExhausted = errors.New("loan number generation retries exhausted")
)
