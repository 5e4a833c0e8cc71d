package standardizer

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	FileError  ErrorKind = "file"
	ParseError ErrorKind = "parse"
)

var (
	ErrNoSource   = errors.New("alias source not found")
	ErrEmptyTable = errors.New("alias table is empty")
)

// StandardizerError is the only error type that crosses the package boundary.
// It is returned exclusively from engine construction; Process never fails.
type StandardizerError struct {
	Kind    ErrorKind
	Message *string
	Err     error
	Cause   error
}

func (e *StandardizerError) Error() string {
	if e.Message != nil {
		return fmt.Sprintf("standardizer %s error: %s - %v (cause: %v)", e.Kind, *e.Message, e.Err, e.Cause)
	}
	return fmt.Sprintf("standardizer %s error: %v (cause: %v)", e.Kind, e.Err, e.Cause)
}

func (e *StandardizerError) Unwrap() error {
	return e.Err
}
