package internal

import (
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind string

const (
	ErrorKindValidationFailed ErrorKind = "VALIDATION_FAILED"
	ErrorKindInputParseFailed ErrorKind = "INPUT_PARSE_FAILED"
	ErrorKindUnauthorized     ErrorKind = "UNAUTHORIZED"
	ErrorKindForbidden        ErrorKind = "FORBIDDEN"
	ErrorKindNotFound         ErrorKind = "NOT_FOUND"
	ErrorKindConflict         ErrorKind = "CONFLICT"
	ErrorKindStorage          ErrorKind = "STORAGE"
	ErrorKindInternal         ErrorKind = "INTERNAL"
)

type ErrorCode string

const (
	ErrCodeInputValidateFail ErrorCode = "INPUT_VALIDATE_FAIL"
	ErrCodeInputParseFail    ErrorCode = "INPUT_PARSE_FAIL"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeDataNotFound      ErrorCode = "DATA_NOT_FOUND"
	ErrCodeCompanyNotFound   ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeDataDuplicated    ErrorCode = "DATA_DUPPLICATED"
	ErrCodeDBError           ErrorCode = "DB_ERROR"
	ErrCodeUnknownInternal   ErrorCode = "UNKNOWN_INTERNAL_ERROR"
)

// AppError is the only error shape that reaches the HTTP boundary.
type AppError struct {
	Kind       ErrorKind
	Code       ErrorCode
	Message    string
	Details    []ValidationError
	StatusCode int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins every validation message, or falls back to Message.
func (e *AppError) GetDetailedMessage() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	messages := make([]string, len(e.Details))
	for i, d := range e.Details {
		messages[i] = d.Message
	}
	return strings.Join(messages, "; ")
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details ...ValidationError) *AppError {
	e.Details = append(e.Details, details...)
	return e
}

// IsServerError reports whether the error is a 5xx category.
func (e *AppError) IsServerError() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// IsAuthError reports whether the error came from authentication or authorization.
func (e *AppError) IsAuthError() bool {
	return e.Kind == ErrorKindUnauthorized || e.Kind == ErrorKindForbidden
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

func NewValidationFailedError(details ...ValidationError) *AppError {
	return &AppError{
		Kind:       ErrorKindValidationFailed,
		Code:       ErrCodeInputValidateFail,
		Message:    "validation failed",
		Details:    details,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInputParseError(message string, cause error) *AppError {
	return &AppError{
		Kind:       ErrorKindInputParseFailed,
		Code:       ErrCodeInputParseFail,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Kind:       ErrorKindUnauthorized,
		Code:       ErrCodeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Kind:       ErrorKindForbidden,
		Code:       ErrCodeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Kind:       ErrorKindNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Kind:       ErrorKindConflict,
		Code:       ErrCodeDataDuplicated,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewStorageError(cause error) *AppError {
	return &AppError{
		Kind:       ErrorKindStorage,
		Code:       ErrCodeDBError,
		Message:    "database error",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewInternalError(cause error) *AppError {
	return &AppError{
		Kind:       ErrorKindInternal,
		Code:       ErrCodeUnknownInternal,
		Message:    "internal server error",
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type ErrorData struct {
	Code    ErrorCode         `json:"code"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type ErrorResponse struct {
	StatusCode int       `json:"status_code"`
	Data       ErrorData `json:"data"`
}

// ToHTTPResponse returns the status and the {status_code, data} body. 5xx
// bodies carry only the generic message; the cause stays server side.
func (e *AppError) ToHTTPResponse() (int, ErrorResponse) {
	message := e.Message
	if !e.IsServerError() {
		message = e.GetDetailedMessage()
	}
	return e.StatusCode, ErrorResponse{
		StatusCode: e.StatusCode,
		Data: ErrorData{
			Code:    e.Code,
			Message: message,
			Errors:  e.Details,
		},
	}
}
