package bpe

import (
	"errors"
	"fmt"
)

// Sentinel errors for model operations.
var (
	// ErrInvalidArgument indicates a training parameter is out of range.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidToken indicates a token id outside [0, VocabSize()).
	ErrInvalidToken = errors.New("invalid token")

	// ErrCorruptModel indicates a persisted model cannot be reconstructed.
	ErrCorruptModel = errors.New("corrupt model")
)

// Error wraps model errors with the operation that failed.
type Error struct {
	Op     string // "train", "decode", "load", ...
	Detail string // Optional context, e.g. the offending id
	Err    error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("bpe %s: %s: %v", e.Op, e.Detail, e.Err)
	}
	return fmt.Sprintf("bpe %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(op string, err error, format string, args ...any) *Error {
	return &Error{
		Op:     op,
		Detail: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
