// Package apperr defines the typed errors returned by the campushub services.
// Every error carries a stable Kind that callers can switch on or match with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the stable code of an Error.
type Kind string

// Error kinds.
const (
	KindNotFound         Kind = "NOT_FOUND"
	KindAccessDenied     Kind = "ACCESS_DENIED"
	KindConflict         Kind = "CONFLICT"
	KindAlreadyExists    Kind = "ALREADY_EXISTS"
	KindAlreadySubmitted Kind = "ALREADY_SUBMITTED"
	KindInvalidInput     Kind = "INVALID_INPUT"
	KindStoreError       Kind = "STORE_ERROR"
)

// Sentinels for errors.Is. ErrConflict also matches AlreadyExists and AlreadySubmitted.
var (
	ErrNotFound         = &Error{Kind: KindNotFound}
	ErrAccessDenied     = &Error{Kind: KindAccessDenied}
	ErrConflict         = &Error{Kind: KindConflict}
	ErrAlreadyExists    = &Error{Kind: KindAlreadyExists}
	ErrAlreadySubmitted = &Error{Kind: KindAlreadySubmitted}
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrStore            = &Error{Kind: KindStoreError}
)

// Error is a service error with a stable Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements error.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString(string(e.Kind))

	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind. The conflict kind also matches
// its two specialisations.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	if t.Kind == e.Kind {
		return true
	}

	return t.Kind == KindConflict && (e.Kind == KindAlreadyExists || e.Kind == KindAlreadySubmitted)
}

func newf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing user, organization, membership or role.
func NotFound(format string, args ...any) error {
	return newf(KindNotFound, format, args...)
}

// AccessDenied reports a failed authorization check.
func AccessDenied(format string, args ...any) error {
	return newf(KindAccessDenied, format, args...)
}

// Conflict reports a uniqueness violation, e.g. a racing duplicate join.
func Conflict(format string, args ...any) error {
	return newf(KindConflict, format, args...)
}

// AlreadyExists reports a duplicate organization name or email.
func AlreadyExists(format string, args ...any) error {
	return newf(KindAlreadyExists, format, args...)
}

// AlreadySubmitted reports a duplicate join request under the strict join policy.
func AlreadySubmitted(format string, args ...any) error {
	return newf(KindAlreadySubmitted, format, args...)
}

// InvalidInput reports a missing or malformed argument.
func InvalidInput(format string, args ...any) error {
	return newf(KindInvalidInput, format, args...)
}

// Store wraps a failure of the underlying store.
// An *Error passes through unchanged so a transaction callback keeps its kind.
func Store(err error, msg string) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	return &Error{Kind: KindStoreError, Msg: msg, Err: err}
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return ""
}

// FromValidation turns validator errors into an InvalidInput error naming the failed fields.
func FromValidation(err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &Error{Kind: KindInvalidInput, Err: err}
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}

	return &Error{Kind: KindInvalidInput, Msg: strings.Join(fields, ", ")}
}
