package apod

import (
	"errors"
	"fmt"
)

var (
	ErrNetwork = errors.New("network error")
	ErrParse   = errors.New("parse error")
	ErrDecode  = errors.New("decode error")
	ErrSave    = errors.New("save error")
	ErrNoImage = errors.New("no valid image")
	ErrBusy    = errors.New("fetch in progress")
)

// Error is a failure of one fetch or save step. Kind is one of the Err*
// sentinels and matches through errors.Is. Message is what the user is
// shown, Status the short text for the status line.
type Error struct {
	Kind    error
	Status  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func newError(kind error, status, message string, err error) *Error {
	if status == "" {
		status = message
	}

	return &Error{Kind: kind, Status: status, Message: message, Err: err}
}

func kindErrorf(kind error, err error, format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return newError(kind, msg, msg, err)
}
