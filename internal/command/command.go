// Package command turns parsed user input into calls against a remote
// resource service. Every sub-command is one of four shapes (List, GetOne,
// Action, StreamDownload) sharing the Command contract, and is run through a
// Dispatcher that reports every outcome as nil or a *Failure.
package command

import (
	"context"
	"errors"
)

// Command is one executable sub-command invocation
type Command interface {
	Execute(ctx context.Context, out Printer) error
}

// Input is what the user supplied for one invocation
type Input struct {
	Args []string
	// Flags holds only the flags the user set explicitly, so an absent flag
	// can be told apart from one set to the empty string.
	Flags map[string]string
}

// Arg returns the i-th positional argument, or "" if there is none
func (in Input) Arg(i int) string {
	if i < 0 || i >= len(in.Args) {
		return ""
	}
	return in.Args[i]
}

// Flag returns the value of an explicitly set flag
func (in Input) Flag(name string) (string, bool) {
	v, ok := in.Flags[name]
	return v, ok
}

// FlagOr returns the value of name, or def when the flag was not set
func (in Input) FlagOr(name, def string) string {
	if v, ok := in.Flags[name]; ok {
		return v
	}
	return def
}

// FlagPtr returns a pointer to the flag value, or nil when it was not set
func (in Input) FlagPtr(name string) *string {
	if v, ok := in.Flags[name]; ok {
		return &v
	}
	return nil
}

var errMissingID = errors.New("identifier must not be empty")
