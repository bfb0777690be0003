package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindNotFound Kind = iota + 1000
	KindDeactivated
	KindInvalidCredentials
	KindDuplicateLogin
	KindStoreUnavailable
	KindValidation
	KindUnauthorized
	KindForbidden
	KindInternal
)

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status. The error middleware
// picks this up when rendering the response.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindDeactivated, KindInvalidCredentials, KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindDuplicateLogin:
		return http.StatusConflict
	case KindValidation:
		return http.StatusBadRequest
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the Kind of err, or KindInternal when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Deactivated(login string) *AppError {
	return &AppError{
		Kind:    KindDeactivated,
		Message: fmt.Sprintf("account %q is deactivated", login),
	}
}

func InvalidCredentials() *AppError {
	return &AppError{
		Kind:    KindInvalidCredentials,
		Message: "invalid credentials",
	}
}

func DuplicateLogin(login string) *AppError {
	return &AppError{
		Kind:    KindDuplicateLogin,
		Message: fmt.Sprintf("login %q already exists", login),
	}
}

func StoreUnavailable(err error) *AppError {
	return &AppError{
		Kind:    KindStoreUnavailable,
		Message: "storage unavailable",
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Message: message,
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Kind:    KindUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Kind:    KindForbidden,
		Message: message,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Kind:    KindInternal,
		Message: "internal server error",
		Err:     err,
	}
}
