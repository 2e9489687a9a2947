package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "VALIDATION"
	CategoryNotFound   ErrorCategory = "NOT_FOUND"
	CategoryConflict   ErrorCategory = "CONFLICT"
	CategoryForbidden  ErrorCategory = "FORBIDDEN"
	CategoryInternal   ErrorCategory = "INTERNAL"
	CategoryExternal   ErrorCategory = "EXTERNAL"
)

// Status is the HTTP status a category maps to when no explicit one is given.
func (c ErrorCategory) Status() int {
	switch c {
	case CategoryValidation:
		return http.StatusBadRequest
	case CategoryNotFound:
		return http.StatusNotFound
	case CategoryConflict:
		return http.StatusConflict
	case CategoryForbidden:
		return http.StatusForbidden
	case CategoryExternal:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

// domainError values are sentinels; WithCause returns a copy that still
// matches its sentinel under errors.Is.
type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
	sentinel *domainError
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	if status == 0 {
		status = category.Status()
	}
	return &domainError{code: code, category: category, status: status, message: message}
}

func (e *domainError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return fmt.Sprintf("%s: %v", e.message, e.cause)
}

func (e *domainError) Code() string            { return e.code }
func (e *domainError) Category() ErrorCategory { return e.category }
func (e *domainError) HTTPStatus() int         { return e.status }
func (e *domainError) Message() string         { return e.message }
func (e *domainError) Unwrap() error           { return e.cause }

func (e *domainError) Is(target error) bool {
	t, ok := target.(*domainError)
	return ok && (e == t || e.sentinel == t)
}

func (e *domainError) WithCause(cause error) DomainError {
	c := *e
	c.cause = cause
	if c.sentinel == nil {
		c.sentinel = e
	}
	return &c
}

func IsDomainError(err error) bool {
	_, ok := AsDomainError(err)
	return ok
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrResourceNotFound  = NewDomainError("RESOURCE_NOT_FOUND", CategoryNotFound, 0, "resource not found")
	ErrEmailAlreadyInUse = NewDomainError("EMAIL_ALREADY_IN_USE", CategoryConflict, 0, "email is already used by an active account")
	ErrValidation        = NewDomainError("VALIDATION_FAILED", CategoryValidation, 0, "validation failed")
	ErrCircuitOpen       = NewDomainError("CIRCUIT_OPEN", CategoryExternal, 0, "circuit breaker is open")
)
