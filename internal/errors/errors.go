// Package errors defines the domain error type shared across services.
// Every business failure carries a stable code that handlers map to an
// HTTP status and clients can match on.
package errors

import "fmt"

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Failure codes
const (
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeUnsupportedCurrency = "UNSUPPORTED_CURRENCY"
	CodeSameCurrency        = "SAME_CURRENCY"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeRateUnavailable     = "RATE_UNAVAILABLE"
	CodePersistenceFailure  = "PERSISTENCE_FAILURE"
)

var (
	ErrInvalidAmount = &DomainError{
		Code:    CodeInvalidAmount,
		Message: "amount must be positive",
	}
	ErrUnsupportedCurrency = &DomainError{
		Code:    CodeUnsupportedCurrency,
		Message: "currency is not supported",
	}
	ErrSameCurrency = &DomainError{
		Code:    CodeSameCurrency,
		Message: "cannot convert to same currency",
	}
	ErrRateUnavailable = &DomainError{
		Code:    CodeRateUnavailable,
		Message: "unable to fetch exchange rates, please try again later",
	}
	ErrPersistenceFailure = &DomainError{
		Code:    CodePersistenceFailure,
		Message: "transaction could not be completed",
	}
)

// InsufficientFunds builds the failure for a trade that exceeds the source
// wallet balance. The available balance is part of the message so the
// caller can show it without a second lookup.
func InsufficientFunds(currency string, available int64) *DomainError {
	return &DomainError{
		Code:    CodeInsufficientFunds,
		Message: fmt.Sprintf("insufficient %s balance. Available: %d", currency, available),
	}
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
