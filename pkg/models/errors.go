package models

import "errors"

// Error taxonomy shared by ingestion, ratio derivation and valuation.
// Every failure is wrapped around one of these so callers can use errors.Is.
var (
	ErrMissingField   = errors.New("missing field")
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidInput   = errors.New("invalid input")
)

// Error kinds as exposed to API clients.
const (
	KindMissingField   = "missing_field"
	KindDivisionByZero = "division_by_zero"
	KindInvalidInput   = "invalid_input"
	KindInternal       = "internal"
)

// ErrorKind maps an error to its stable kind string.
// DivisionByZero wins over InvalidInput when an error carries both.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingField):
		return KindMissingField
	case errors.Is(err, ErrDivisionByZero):
		return KindDivisionByZero
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	default:
		return KindInternal
	}
}
