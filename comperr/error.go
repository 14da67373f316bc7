// Package comperr holds the error type shared by every neocomp package.
package comperr

import "fmt"

// Error is a scoped failure. Err is one of the sentinel errors exported by the
// package that produced it, so callers match with errors.Is.
type Error struct {
	Scope  string
	Err    error
	Detail string
}

func New(scope string, err error, detail string) *Error {
	return &Error{Scope: scope, Err: err, Detail: detail}
}

func Newf(scope string, err error, format string, args ...any) *Error {
	return &Error{Scope: scope, Err: err, Detail: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Err.Error()
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	if e.Scope == "" {
		return msg
	}
	return e.Scope + ": " + msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
