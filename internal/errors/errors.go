// Package errors provides custom error types for the Walleto API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors. ErrBrokenRules is the base for business-rule violations
// (the 422 class); ErrInvalidInput covers syntactic problems (400).
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrBrokenRules    = &AppError{Code: "BROKEN_RULES", Message: "Business rule violated", StatusCode: http.StatusUnprocessableEntity}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Category errors.
var (
	ErrCategoryNotFound       = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found", StatusCode: http.StatusNotFound}
	ErrDuplicateCategoryTitle = &AppError{Code: "DUPLICATE_CATEGORY_TITLE", Message: "A category with this title already exists", StatusCode: http.StatusConflict}
	ErrParentCategoryNotFound = &AppError{Code: "PARENT_CATEGORY_NOT_FOUND", Message: "Parent category does not exist", StatusCode: http.StatusUnprocessableEntity}
	ErrSelfParentCategory     = &AppError{Code: "SELF_PARENT_CATEGORY", Message: "A category cannot be its own parent", StatusCode: http.StatusUnprocessableEntity}
	ErrCyclicCategoryParent   = &AppError{Code: "CYCLIC_CATEGORY_PARENT", Message: "A category cannot be moved under its own descendant", StatusCode: http.StatusUnprocessableEntity}
)

// Operation errors.
var (
	ErrOperationNotFound    = &AppError{Code: "OPERATION_NOT_FOUND", Message: "Operation not found", StatusCode: http.StatusNotFound}
	ErrInvalidOperationType = &AppError{Code: "INVALID_OPERATION_TYPE", Message: "Operation type must be income or expenses", StatusCode: http.StatusUnprocessableEntity}
	ErrAmountSignMismatch   = &AppError{Code: "AMOUNT_SIGN_MISMATCH", Message: "Amount sign does not match operation type", StatusCode: http.StatusUnprocessableEntity}
	ErrInvalidDateFormat    = &AppError{Code: "INVALID_DATE_FORMAT", Message: "Wrong date format", StatusCode: http.StatusUnprocessableEntity}
)

// Report errors.
var (
	ErrInvalidPeriod = &AppError{Code: "INVALID_PERIOD", Message: "Unknown report period", StatusCode: http.StatusUnprocessableEntity}
)
