package aggregates

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/farm-catalog-backend/internal/domain/catalog"
)

// ErrorCode standardizes aggregate failure semantics across the catalog.
type ErrorCode string

const (
	CodeValidation      ErrorCode = "validation"
	CodeNotFound        ErrorCode = "not_found"
	CodeInvalidArgument ErrorCode = "invalid_argument"
	CodeConflict        ErrorCode = "conflict"
	CodeRetryable       ErrorCode = "retryable"
	CodeInternal        ErrorCode = "internal"
)

// Error is the canonical aggregate error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an aggregate error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with aggregate error semantics.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

// IsCode checks whether err (or wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// CodeOf extracts the code of an aggregate error or of a typed catalog error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var aggErr *Error
	if errors.As(err, &aggErr) {
		return aggErr.Code
	}
	var nf *catalog.NotFoundError
	if errors.As(err, &nf) {
		return CodeNotFound
	}
	var ve *catalog.ValidationError
	if errors.As(err, &ve) {
		return CodeValidation
	}
	var ia *catalog.InvalidArgumentError
	if errors.As(err, &ia) {
		return CodeInvalidArgument
	}
	return ""
}
