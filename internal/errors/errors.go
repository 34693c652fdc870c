package errors

import "errors"

type ErrorCode string

const (
	CodeInvalidPhone         ErrorCode = "invalid_phone"
	CodeInterpretationFailed ErrorCode = "interpretation_failed"
	CodeVendorError          ErrorCode = "vendor_error"
	CodeNotFound             ErrorCode = "not_found"
	CodeUnauthorized         ErrorCode = "unauthorized"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (se ServiceError) Error() string {
	return se.Message
}

func (se ServiceError) Unwrap() error {
	return se.Err
}

func New(code ErrorCode, message string) ServiceError {
	return ServiceError{Code: code, Message: message}
}

func Wrap(code ErrorCode, message string, err error) ServiceError {
	return ServiceError{Code: code, Message: message, Err: err}
}

// HasCode reports whether err or anything it wraps is a ServiceError with
// the given code.
func HasCode(err error, code ErrorCode) bool {
	var se ServiceError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}
