// Package apperr defines the error kinds exposed by the API and their
// mapping to HTTP status codes.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the HTTP boundary.
type Kind int

const (
	// KindClientInput is a malformed request (bad file extension, bad body).
	KindClientInput Kind = iota
	// KindPrecondition is a PDF operation attempted with no document loaded.
	KindPrecondition
	// KindUpstream is an LLM or embedding provider failure, including a
	// missing or invalid credential.
	KindUpstream
	// KindIngest is an unparseable or unreadable PDF.
	KindIngest
)

// Error is an error tagged with a Kind. The message is what callers see
// in the response detail, so it should include the underlying cause.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New returns an Error of the given kind wrapping a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// ClientInput returns a client-input error.
func ClientInput(format string, args ...interface{}) *Error {
	return New(KindClientInput, format, args...)
}

// Precondition returns a precondition error.
func Precondition(format string, args ...interface{}) *Error {
	return New(KindPrecondition, format, args...)
}

// Upstream returns an upstream error.
func Upstream(format string, args ...interface{}) *Error {
	return New(KindUpstream, format, args...)
}

// Ingest returns an ingest error.
func Ingest(format string, args ...interface{}) *Error {
	return New(KindIngest, format, args...)
}

// Status returns the HTTP status code for err. Client-input and
// precondition errors map to 400; everything else, including errors that
// carry no Kind, maps to 500.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.Kind {
		case KindClientInput, KindPrecondition:
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
