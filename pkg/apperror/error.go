package apperror

import "net/http"

// AppError is the single error type carried from usecases to the HTTP layer.
// Code is a stable machine-readable identifier, Fields holds per-field
// validation messages keyed by the JSON field name.
type AppError struct {
	Status int               `json:"-"`
	Code   string            `json:"code"`
	Detail string            `json:"detail"`
	Fields map[string]string `json:"errors,omitempty"`
	Err    error             `json:"-"`
}

func (e *AppError) Error() string {
	return e.Detail
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, code, detail string) *AppError {
	return &AppError{Status: status, Code: code, Detail: detail}
}

// Validation reports a 400 with field-level messages. Validation errors are
// raised before anything is persisted.
func Validation(code, detail string, fields map[string]string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Code: code, Detail: detail, Fields: fields}
}

func NotFound(code, detail string) *AppError {
	return New(http.StatusNotFound, code, detail)
}

func Unauthorized(detail string) *AppError {
	return New(http.StatusUnauthorized, "NOT_AUTHENTICATED", detail)
}

func Forbidden(detail string) *AppError {
	return New(http.StatusForbidden, "NOT_AUTHORIZED", detail)
}

// Internal wraps an unexpected error with a per-operation code so a client can
// tell which step failed even though the detail stays generic.
func Internal(code, detail string, err error) *AppError {
	return &AppError{Status: http.StatusInternalServerError, Code: code, Detail: detail, Err: err}
}
