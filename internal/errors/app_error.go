package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-console/internal/backend"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation          = "VALIDATION_ERROR"
	ErrCodeBadRequest          = "BAD_REQUEST"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeUpstream            = "UPSTREAM_ERROR"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeTooManyRequests     = "TOO_MANY_REQUESTS"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

// UpstreamUnavailableError is a transport failure talking to the backend API.
func UpstreamUnavailableError(message string) *AppError {
	return NewAppError(ErrCodeUpstreamUnavailable, message, http.StatusBadGateway)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

// FromStatus builds the AppError for a non-success backend response, keeping its status.
func FromStatus(statusCode int, message string) *AppError {
	var code string

	switch {
	case statusCode == http.StatusBadRequest:
		code = ErrCodeBadRequest
	case statusCode == http.StatusUnauthorized:
		code = ErrCodeUnauthorized
	case statusCode == http.StatusForbidden:
		code = ErrCodeForbidden
	case statusCode == http.StatusNotFound:
		code = ErrCodeNotFound
	case statusCode == http.StatusConflict:
		code = ErrCodeConflict
	case statusCode == http.StatusTooManyRequests:
		code = ErrCodeTooManyRequests
	case statusCode >= 400 && statusCode < 500:
		code = ErrCodeBadRequest
	default:
		code = ErrCodeUpstream
	}

	return NewAppError(code, message, statusCode)
}

// FromUpstream maps a backend client failure. A backend response keeps its status and
// message, anything else is a transport failure reported as "Failed to <action>".
func FromUpstream(err error, action string) *AppError {
	if appErr, ok := IsAppError(err); ok {
		return appErr
	}

	var respErr *backend.ResponseError
	if errors.As(err, &respErr) {
		return FromStatus(respErr.StatusCode, respErr.Message).WithError(err)
	}

	var timeout interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &timeout) && timeout.Timeout()) {
		return NewAppError(ErrCodeUpstreamUnavailable, "Failed to "+action+": the server took too long to respond", http.StatusGatewayTimeout).WithError(err)
	}

	return UpstreamUnavailableError("Failed to " + action).WithError(err)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason)).WithDetail(field)
}
