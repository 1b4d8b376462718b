package service

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("collaborator unavailable")
)

// Error carries an error kind plus the operation that failed and, for
// collaborator failures, the underlying cause.
type Error struct {
	Kind error
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Msg != "":
		return e.Msg
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func invalid(op, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func notFound(op, format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// storeErr classifies an error returned by a store. Missing rows become
// ErrNotFound with msg; everything else is ErrUnavailable.
func storeErr(op string, err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return &Error{Kind: ErrNotFound, Op: op, Msg: msg}
	}
	return &Error{Kind: ErrUnavailable, Op: op, Err: err}
}
