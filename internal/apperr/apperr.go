package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeAuth       Code = "AUTH"
	CodeValidation Code = "VALIDATION"
	CodePermission Code = "PERMISSION"
	CodeNotFound   Code = "NOT_FOUND"
	CodeBlocked    Code = "BLOCKED"
	CodeDelivery   Code = "DELIVERY"
	CodeInternal   Code = "INTERNAL"
)

// Error is the error type returned by services. Handlers translate the code
// into a transport status; the message is safe to show to clients.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error carrying the same code, so errors.Is(err, apperr.Blocked(""))
// works regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

func Wrap(code Code, message string, cause error) error {
	return &Error{Code: code, Message: message, Cause: cause}
}

func Auth(msg string) error       { return New(CodeAuth, msg) }
func Validation(msg string) error { return New(CodeValidation, msg) }
func Permission(msg string) error { return New(CodePermission, msg) }
func NotFound(msg string) error   { return New(CodeNotFound, msg) }
func Blocked(msg string) error    { return New(CodeBlocked, msg) }

func Delivery(msg string, cause error) error {
	return Wrap(CodeDelivery, msg, cause)
}

func Internal(msg string, cause error) error {
	return Wrap(CodeInternal, msg, cause)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the client-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal server error"
}
