package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrInternal     = errors.New("internal server error")
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyRegistered signals that a (name, wing) pair already has a
	// password set, so the caller should log in instead of registering.
	ErrAlreadyRegistered = errors.New("account already registered")

	// ErrNeedsPassword signals that the account exists but has no password
	// yet, so the caller should claim it via the set-password flow.
	ErrNeedsPassword = errors.New("account has no password set")

	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrConflict = errors.New("resource already exists")
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrAlreadyRegistered) || errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNeedsPassword) {
		return http.StatusPreconditionRequired
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
