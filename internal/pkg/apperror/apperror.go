// Package apperror carries the storage-layer error taxonomy to the HTTP
// boundary. Inference-layer failures never reach here; the chat service
// swallows them into sentinel reply content.
package apperror

import "fmt"

// NotFoundError means a referenced group or session id is absent.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.Id)
}

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, Id: id}
}

// ConstraintViolationError means the database rejected a write, e.g.
// appending a message to a session deleted out from under the request.
type ConstraintViolationError struct {
	Message string
}

func (e *ConstraintViolationError) Error() string {
	return e.Message
}

func NewConstraintViolation(message string) error {
	return &ConstraintViolationError{Message: message}
}
