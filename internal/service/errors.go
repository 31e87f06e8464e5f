package service

import "github.com/pkg/errors"

type ErrorCode string

const (
	ErrorCodeAlreadyMember ErrorCode = "ALREADY_MEMBER"
	ErrorCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrorCodeLookupFailed  ErrorCode = "LOOKUP_FAILED"
	ErrorCodeInvalidBody   ErrorCode = "INVALID_BODY"
	ErrorCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrorCodeUnspecified   ErrorCode = "UNSPECIFIED"
)

type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`

	cause error
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// WrapError keeps the store failure reachable through errors.Is / errors.As.
func WrapError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// AsError extracts a *Error from err, wrapping anything else as UNSPECIFIED.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var res *Error
	if errors.As(err, &res) {
		return res
	}
	return WrapError(ErrorCodeUnspecified, err.Error(), err)
}
