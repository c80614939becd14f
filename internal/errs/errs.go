// Package errs defines the coded errors returned by fw operations.
//
// Every failure that reaches the CLI carries a [Code] so callers (and tests)
// can branch on the category without matching message text. Errors may also
// carry operator guidance and structured details such as the backup tag
// created before a failed update.
package errs

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Code identifies an error category.
type Code string

const (
	NotARepository      Code = "NOT_A_REPOSITORY"
	NotInstalled        Code = "NOT_INSTALLED"
	AlreadyInstalled    Code = "ALREADY_INSTALLED"
	NetworkUnavailable  Code = "NETWORK_UNAVAILABLE"
	AuthorizationDenied Code = "AUTHORIZATION_DENIED"
	RemoteDiverged      Code = "REMOTE_DIVERGED"
	Conflict            Code = "CONFLICT"
	TagConflict         Code = "TAG_CONFLICT"
	DescriptionRequired Code = "DESCRIPTION_REQUIRED"
	VcsFailure          Code = "VCS_FAILURE"
	OverlayCorruption   Code = "OVERLAY_CORRUPTION"
	InstallationFailed  Code = "INSTALLATION_FAILED"
	PushFailed          Code = "PUSH_FAILED"
	NotFound            Code = "NOT_FOUND"
	InvalidInput        Code = "INVALID_INPUT"
)

// Detail keys used across packages.
const (
	DetailBackupTag       = "backup_tag"
	DetailPreviousVersion = "previous_version"
	DetailCommand         = "command"
)

// Error is a coded error with optional guidance and details.
type Error struct {
	Code     Code
	Message  string
	Guidance []string
	Details  map[string]string
	Wrapped  error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Wrapped)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithGuidance returns a copy of e with the given guidance lines appended.
func (e *Error) WithGuidance(lines ...string) *Error {
	c := e.clone()
	c.Guidance = append(c.Guidance, lines...)
	return c
}

// WithDetail returns a copy of e with key set to value.
func (e *Error) WithDetail(key, value string) *Error {
	c := e.clone()
	c.Details[key] = value
	return c
}

// Detail returns the detail value for key, or "".
func (e *Error) Detail(key string) string {
	return e.Details[key]
}

func (e *Error) clone() *Error {
	c := *e
	c.Guidance = slices.Clone(e.Guidance)
	c.Details = make(map[string]string, len(e.Details)+1)
	maps.Copy(c.Details, e.Details)
	return &c
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message, Details: map[string]string{}}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. Returns nil if err is nil.
func Wrap(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// Sentinel returns a bare error for code, for use as an errors.Is target.
func Sentinel(code Code) error {
	return &Error{Code: code}
}

// Is reports whether any error in err's chain has the given code.
func Is(err error, code Code) bool {
	return errors.Is(err, Sentinel(code))
}

// CodeOf returns the code of the outermost *Error in err's chain,
// or "" if there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// GuidanceOf collects guidance lines from every *Error in the chain,
// outermost first.
func GuidanceOf(err error) []string {
	var lines []string
	for err != nil {
		if e, ok := err.(*Error); ok {
			lines = append(lines, e.Guidance...)
		}
		err = errors.Unwrap(err)
	}
	return lines
}
