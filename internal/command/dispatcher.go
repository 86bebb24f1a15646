package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/schererja/pncctl/pkg/logger"
)

// Builder turns user input into a command bound to the service S
type Builder[S any] func(svc S, in Input) (Command, error)

var ErrBusy = errors.New("another command is already executing")

const (
	stateIdle int32 = iota
	stateExecuting
)

// Dispatcher resolves sub-command names to registered builders and runs one
// command at a time.
//
// The service client is created lazily by newService on the first dispatch
// and reused for the dispatcher's lifetime. It is only touched while the
// dispatcher is executing, which admits a single caller; a second concurrent
// Dispatch fails with ErrBusy instead of sharing the client.
type Dispatcher[S any] struct {
	newService func() (S, error)
	builders   map[string]Builder[S]
	out        Printer
	log        *logger.Logger

	state   atomic.Int32
	svc     S
	svcInit bool
}

// NewDispatcher creates a dispatcher printing command output to out
func NewDispatcher[S any](newService func() (S, error), out Printer, log *logger.Logger) *Dispatcher[S] {
	if log == nil {
		log = logger.Discard()
	}
	return &Dispatcher[S]{
		newService: newService,
		builders:   make(map[string]Builder[S]),
		out:        out,
		log:        log,
	}
}

// Register binds name to b, replacing any earlier builder
func (d *Dispatcher[S]) Register(name string, b Builder[S]) {
	d.builders[name] = b
}

// Commands returns the registered names in sorted order
func (d *Dispatcher[S]) Commands() []string {
	names := make([]string, 0, len(d.builders))
	for name := range d.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch builds and executes the command registered as name. It returns nil
// on success and a *Failure otherwise, which is also logged at ERROR level.
// It never panics.
func (d *Dispatcher[S]) Dispatch(ctx context.Context, name string, in Input) (err error) {
	if !d.state.CompareAndSwap(stateIdle, stateExecuting) {
		return &Failure{Command: name, Kind: KindUsage, Message: ErrBusy.Error(), Err: ErrBusy}
	}
	defer d.state.Store(stateIdle)

	log := d.log.With(slog.String("command", name))
	defer func() {
		if r := recover(); r != nil {
			err = &Failure{Command: name, Kind: KindInternal, Message: fmt.Sprintf("panic: %v", r)}
		}
		if err != nil {
			f := newFailure(name, err)
			log.ErrorContext(ctx, "Command failed", f, slog.String("kind", f.Kind.String()))
			err = f
		}
	}()

	build, ok := d.builders[name]
	if !ok {
		return &kindError{kind: KindUsage, err: fmt.Errorf("unknown command %q", name)}
	}

	svc, err := d.service()
	if err != nil {
		return &kindError{kind: KindConfig, err: err}
	}

	cmd, err := build(svc, in)
	if err != nil {
		return invalid(err)
	}

	log.DebugContext(ctx, "Executing command", slog.Any("args", in.Args))
	return cmd.Execute(ctx, d.out)
}

// service returns the cached client, creating it on first use. A failed
// construction is not cached.
func (d *Dispatcher[S]) service() (S, error) {
	if d.svcInit {
		return d.svc, nil
	}
	svc, err := d.newService()
	if err != nil {
		var zero S
		return zero, err
	}
	d.svc = svc
	d.svcInit = true
	return svc, nil
}
