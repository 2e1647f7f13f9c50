// Package apierror defines the single error type returned to API clients.
//
// Every failure that reaches a client, whether raised by the authentication
// middleware, request validation or a store, is an *Error carrying an HTTP
// status and a client-safe message. The wrapped cause is kept for logs and
// audit records and is never serialized.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Messages shared by several call sites.
const (
	MsgUnauthorized       = "Not authorized."
	MsgUserExists         = "User already exists."
	MsgInvalidCredentials = "Invalid username or password."
	MsgValidationFailed   = "Validation failed."
	MsgInternal           = "Internal server error."
)

// Error is an API error with a status code and client-safe message.
type Error struct {
	Status  int
	Message string
	// Fields holds per-field validation messages.
	Fields map[string]string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Status, e.Message, e.cause)
	}
	return fmt.Sprintf("%d %s", e.Status, e.Message)
}

// Unwrap returns the internal cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// New creates an Error with the given status and message.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Wrap creates an Error that keeps cause for diagnostics.
func Wrap(status int, message string, cause error) *Error {
	return &Error{Status: status, Message: message, cause: cause}
}

// Unauthenticated is returned for a missing, malformed, expired or forged token.
// The message does not vary with the cause.
func Unauthenticated(cause error) *Error {
	return Wrap(http.StatusUnauthorized, MsgUnauthorized, cause)
}

// InvalidCredentials is returned when a login fails, whatever the reason.
func InvalidCredentials(cause error) *Error {
	return Wrap(http.StatusUnauthorized, MsgInvalidCredentials, cause)
}

// Conflict is returned when a unique resource already exists.
func Conflict(message string, cause error) *Error {
	return Wrap(http.StatusConflict, message, cause)
}

// NotFound is returned when a resource does not exist or is not owned by the caller.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// BadRequest is returned for unparsable input.
func BadRequest(message string, cause error) *Error {
	return Wrap(http.StatusBadRequest, message, cause)
}

// Validation is returned when a well-formed request breaks a field rule.
func Validation(fields map[string]string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: MsgValidationFailed, Fields: fields}
}

// Internal wraps an unexpected failure.
func Internal(cause error) *Error {
	return Wrap(http.StatusInternalServerError, MsgInternal, cause)
}

// From converts any error to an *Error. Errors that are not already API
// errors become 500s so their text never reaches the client.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(err)
}

type body struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Write serializes err as a JSON error response.
func Write(w http.ResponseWriter, err error) {
	apiErr := From(err)

	response, _ := json.Marshal(body{Error: apiErr.Message, Fields: apiErr.Fields})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_, _ = w.Write(response)
}
