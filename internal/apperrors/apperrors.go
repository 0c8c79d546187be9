package apperrors

import "errors"

// Kind classifies a domain error so the transport layer can map it
// to a response status without inspecting message strings.
type Kind string

const (
	KindUnauthorized       Kind = "UNAUTHORIZED"
	KindForbidden          Kind = "FORBIDDEN"
	KindValidation         Kind = "VALIDATION"
	KindConflict           Kind = "CONFLICT"
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindConfig             Kind = "CONFIGURATION"
	KindInternal           Kind = "INTERNAL"
)

// Error is a domain error carrying a kind and a caller-facing message.
// It propagates unmodified from the point of detection to the transport
// boundary.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is makes errors.Is match two domain errors of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New creates a domain error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Unauthorized signals a missing, malformed, invalid or expired credential.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Forbidden signals an authenticated caller lacking the required role.
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// Validation signals a malformed input field.
func Validation(message string) *Error {
	return New(KindValidation, message)
}

// Conflict signals a uniqueness violation.
func Conflict(message string) *Error {
	return New(KindConflict, message)
}

// NotFound signals that a referenced entity does not exist.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// InvalidCredentials signals a login failure without revealing whether
// the username or the password was wrong.
func InvalidCredentials(message string) *Error {
	return New(KindInvalidCredentials, message)
}

// Config signals a fatal configuration problem detected at startup.
func Config(message string) *Error {
	return New(KindConfig, message)
}

// KindOf extracts the kind from err, returning KindInternal for errors
// that are not domain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
