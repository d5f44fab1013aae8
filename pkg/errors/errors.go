package errors

import "fmt"

// ── Error taxonomy ──
//
// Service sentinels are built from these types so handlers can map either a
// specific sentinel (errors.Is) or a whole category (errors.As).

// ValidationError a required field is missing or malformed
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation creates a ValidationError
func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// ParseError an uploaded file or row could not be parsed
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// NewParse creates a ParseError
func NewParse(msg string) *ParseError {
	return &ParseError{Message: msg}
}

// NoMatchError a lookup (auto-fill) found nothing
type NoMatchError struct {
	Message string
}

func (e *NoMatchError) Error() string { return e.Message }

// NewNoMatch creates a NoMatchError
func NewNoMatch(msg string) *NoMatchError {
	return &NoMatchError{Message: msg}
}

// TransportKind mail relay failure category
type TransportKind string

const (
	TransportAuth       TransportKind = "EAUTH"
	TransportConnection TransportKind = "ECONNECTION"
	TransportTimeout    TransportKind = "ETIMEDOUT"
	TransportSocket     TransportKind = "ESOCKET"
	TransportSend       TransportKind = "ESEND"
)

// TransportError mail relay failure
type TransportError struct {
	Kind TransportKind
	Op   string // verify | send
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mail relay %s failed (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Code returns the client-facing error code
func (e *TransportError) Code() string { return string(e.Kind) }

// Message returns a categorized, human-readable summary
func (e *TransportError) Message() string {
	switch e.Kind {
	case TransportAuth:
		return "Mail relay authentication failed"
	case TransportConnection:
		return "Could not connect to the mail relay"
	case TransportTimeout:
		return "Mail relay timed out"
	case TransportSocket:
		return "Mail relay connection was interrupted"
	default:
		return "Failed to send email"
	}
}
