package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/schererja/pncctl/internal/pnc"
)

// Kind classifies why a command failed
type Kind int

const (
	KindInternal Kind = iota
	KindUsage
	KindConfig
	KindValidation
	KindRemote
	KindLocalIO
	KindInterrupted
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	case KindRemote:
		return "remote"
	case KindLocalIO:
		return "local-io"
	case KindInterrupted:
		return "interrupted"
	default:
		return "internal"
	}
}

// Failure is the structured report of a failed command
type Failure struct {
	Command string
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s error: %s", f.Command, f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// kindError tags an error with the Kind it should be reported as
type kindError struct {
	kind Kind
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }
func (e *kindError) Unwrap() error { return e.err }

func invalid(err error) error {
	return &kindError{kind: KindValidation, err: err}
}

func localIO(err error) error {
	return &kindError{kind: KindLocalIO, err: err}
}

// KindOf classifies err. Explicit tags win over the error's type.
func KindOf(err error) Kind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	var ke *kindError
	if errors.As(err, &ke) {
		return ke.kind
	}
	if errors.Is(err, pnc.ErrInvalidID) {
		return KindValidation
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindInterrupted
	}
	var re *pnc.RemoteError
	if errors.As(err, &re) {
		return KindRemote
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return KindLocalIO
	}
	return KindInternal
}

func newFailure(command string, err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{
		Command: command,
		Kind:    KindOf(err),
		Message: err.Error(),
		Err:     err,
	}
}
