package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies an error class visible to clients.
type ErrorCode string

const (
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeConflict   ErrorCode = "CONFLICT"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"
	ErrCodeForbidden  ErrorCode = "FORBIDDEN"

	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeDBError      ErrorCode = "DB_ERROR"
)

// AppError is an application error carrying a client-facing code.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new AppError.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError { return NewAppError(ErrCodeValidation, message, nil) }

func Conflict(message string) *AppError { return NewAppError(ErrCodeConflict, message, nil) }

func NotFound(message string) *AppError { return NewAppError(ErrCodeNotFound, message, nil) }

func Forbidden(message string) *AppError { return NewAppError(ErrCodeForbidden, message, nil) }

// IsAppError reports whether err wraps an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError returns the first AppError in err's chain, or nil.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

var (
	ErrRoomNotFound        = NotFound("room not found")
	ErrReservationNotFound = NotFound("reservation not found")
	ErrBlockNotFound       = NotFound("room block not found")
	ErrPaymentNotFound     = NotFound("payment not found")
	ErrDiscountNotFound    = NotFound("discount not found")

	ErrRoomNotAvailable = Conflict("room is not available for the requested dates")
	ErrStaleWrite       = Conflict("record was modified concurrently, reload and retry")

	ErrTenantRequired = Validation("tenant is required")
)
