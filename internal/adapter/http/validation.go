package http

import (
	"github.com/go-playground/validator/v10"

	domain "bank-loans-service/internal/domain/loan"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// loan type / status must come from the closed enums
	_ = v.RegisterValidation("loantype", func(fl validator.FieldLevel) bool {
		return domain.KnownType(domain.Type(fl.Field().String()))
	})
	_ = v.RegisterValidation("loanstatus", func(fl validator.FieldLevel) bool {
		return domain.KnownStatus(domain.Status(fl.Field().String()))
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// ToFieldErrors maps validator.ValidationErrors to readable field messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: e.Field(), Message: "is required"})
		case "loantype":
			out = append(out, FieldError{Field: e.Field(), Message: "must be one of PERSONAL, HOME, AUTO, EDUCATION"})
		case "loanstatus":
			out = append(out, FieldError{Field: e.Field(), Message: "must be one of ACTIVE, CLOSED, DEFAULTED"})
		case "gt":
			out = append(out, FieldError{Field: e.Field(), Message: "must be greater than " + e.Param()})
		default:
			out = append(out, FieldError{Field: e.Field(), Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
