package commonerrors

import "fmt"

// NotFoundError is raised when a lookup by id, email or status filter yields
// no row. It matches ErrResourceNotFound under errors.Is.
type NotFoundError struct {
	Resource string
	Key      any
	cause    error
}

func NewNotFound(resource string, key any) *NotFoundError {
	return &NotFoundError{Resource: resource, Key: key}
}

func (e *NotFoundError) Error() string {
	return e.Message()
}

func (e *NotFoundError) Code() string {
	return ErrResourceNotFound.Code()
}

func (e *NotFoundError) Category() ErrorCategory {
	return CategoryNotFound
}

func (e *NotFoundError) HTTPStatus() int {
	return CategoryNotFound.Status()
}

func (e *NotFoundError) Message() string {
	return fmt.Sprintf("%s not found: %v", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return e.cause
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

func (e *NotFoundError) WithCause(cause error) DomainError {
	return &NotFoundError{Resource: e.Resource, Key: e.Key, cause: cause}
}
