package command

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schererja/pncctl/internal/pnc"
	"github.com/schererja/pncctl/pkg/logger"
)

// fakeService records the builds it was asked to cancel
type fakeService struct {
	cancelled []string
}

type commandFunc func(ctx context.Context, out Printer) error

func (f commandFunc) Execute(ctx context.Context, out Printer) error { return f(ctx, out) }

func newTestDispatcher(t *testing.T, constructions *int) *Dispatcher[*fakeService] {
	t.Helper()
	svc := &fakeService{}
	d := NewDispatcher(func() (*fakeService, error) {
		*constructions++
		return svc, nil
	}, &recorder{}, nil)

	d.Register("cancel", func(s *fakeService, in Input) (Command, error) {
		return &Action[NoParams, struct{}]{
			ID: in.Arg(0),
			Do: func(_ context.Context, id string, _ NoParams) (*struct{}, error) {
				s.cancelled = append(s.cancelled, id)
				return nil, nil
			},
		}, nil
	})
	return d
}

func TestDispatcher_CancelInvokesOneRemoteCall(t *testing.T) {
	n := 0
	d := newTestDispatcher(t, &n)

	err := d.Dispatch(context.Background(), "cancel", Input{Args: []string{"42"}})
	require.NoError(t, err)

	svc, _ := d.service()
	assert.Equal(t, []string{"42"}, svc.cancelled)
}

func TestDispatcher_ServiceCreatedOnceAndLazily(t *testing.T) {
	n := 0
	d := newTestDispatcher(t, &n)
	assert.Equal(t, 0, n)

	require.NoError(t, d.Dispatch(context.Background(), "cancel", Input{Args: []string{"1"}}))
	require.NoError(t, d.Dispatch(context.Background(), "cancel", Input{Args: []string{"2"}}))
	assert.Equal(t, 1, n)
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	n := 0
	d := newTestDispatcher(t, &n)

	err := d.Dispatch(context.Background(), "explode", Input{})
	var f *Failure
	require.True(t, errors.As(err, &f))
	assert.Equal(t, KindUsage, f.Kind)
	assert.Equal(t, "explode", f.Command)
	assert.Equal(t, 0, n)
}

func TestDispatcher_ServiceConstructionFailureIsNotCached(t *testing.T) {
	calls := 0
	d := NewDispatcher(func() (*fakeService, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("no url")
		}
		return &fakeService{}, nil
	}, &recorder{}, nil)
	d.Register("noop", func(*fakeService, Input) (Command, error) {
		return commandFunc(func(context.Context, Printer) error { return nil }), nil
	})

	err := d.Dispatch(context.Background(), "noop", Input{})
	assert.Equal(t, KindConfig, KindOf(err))
	require.NoError(t, d.Dispatch(context.Background(), "noop", Input{}))
	assert.Equal(t, 2, calls)
}

func TestDispatcher_ClassifiesFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"remote", &pnc.RemoteError{StatusCode: 404}, KindRemote},
		{"wrapped remote", errorsJoin(&pnc.RemoteError{StatusCode: 500}), KindRemote},
		{"validation", invalid(errors.New("bad flag")), KindValidation},
		{"invalid id", errorsJoin(pnc.ErrInvalidID), KindValidation},
		{"local", localIO(errors.New("disk full")), KindLocalIO},
		{"interrupted", context.Canceled, KindInterrupted},
		{"other", errors.New("mystery"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(func() (*fakeService, error) { return &fakeService{}, nil }, &recorder{}, nil)
			d.Register("run", func(*fakeService, Input) (Command, error) {
				return commandFunc(func(context.Context, Printer) error { return tt.err }), nil
			})

			err := d.Dispatch(context.Background(), "run", Input{})
			var f *Failure
			require.True(t, errors.As(err, &f))
			assert.Equal(t, tt.want, f.Kind)
			assert.Equal(t, tt.err.Error(), f.Message)
			assert.Contains(t, f.Error(), "run: "+tt.want.String()+" error")
		})
	}
}

func errorsJoin(err error) error {
	return errors.Join(errors.New("listing builds"), err)
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	d := NewDispatcher(func() (*fakeService, error) { return &fakeService{}, nil }, &recorder{}, nil)
	d.Register("boom", func(*fakeService, Input) (Command, error) {
		return commandFunc(func(context.Context, Printer) error { panic("nil map") }), nil
	})

	err := d.Dispatch(context.Background(), "boom", Input{})
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Contains(t, err.Error(), "nil map")

	// back to idle afterwards
	d.Register("ok", func(*fakeService, Input) (Command, error) {
		return commandFunc(func(context.Context, Printer) error { return nil }), nil
	})
	assert.NoError(t, d.Dispatch(context.Background(), "ok", Input{}))
}

func TestDispatcher_RejectsNestedDispatch(t *testing.T) {
	var d *Dispatcher[*fakeService]
	d = NewDispatcher(func() (*fakeService, error) { return &fakeService{}, nil }, &recorder{}, nil)
	var inner error
	d.Register("outer", func(*fakeService, Input) (Command, error) {
		return commandFunc(func(ctx context.Context, _ Printer) error {
			inner = d.Dispatch(ctx, "outer", Input{})
			return nil
		}), nil
	})

	require.NoError(t, d.Dispatch(context.Background(), "outer", Input{}))
	require.Error(t, inner)
	assert.ErrorIs(t, inner, ErrBusy)
}

func TestDispatcher_Commands(t *testing.T) {
	n := 0
	d := newTestDispatcher(t, &n)
	d.Register("get", nil)
	assert.Equal(t, []string{"cancel", "get"}, d.Commands())
}

func TestInput(t *testing.T) {
	in := Input{Args: []string{"a"}, Flags: map[string]string{"sort": ""}}
	assert.Equal(t, "a", in.Arg(0))
	assert.Equal(t, "", in.Arg(3))

	require.NotNil(t, in.FlagPtr("sort"))
	assert.Equal(t, "", *in.FlagPtr("sort"))
	assert.Nil(t, in.FlagPtr("query"))
	assert.Equal(t, "false", in.FlagOr("temporary-build", "false"))
	_, ok := in.Flag("query")
	assert.False(t, ok)
}

func TestDispatcher_LogsFailuresAtErrorLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)

	d := NewDispatcher(func() (*fakeService, error) { return &fakeService{}, nil }, &recorder{}, log)
	d.Register("get", func(*fakeService, Input) (Command, error) {
		return commandFunc(func(context.Context, Printer) error {
			return &pnc.RemoteError{StatusCode: 404, Message: "Build 9 does not exist"}
		}), nil
	})
	d.Register("noop", func(*fakeService, Input) (Command, error) {
		return commandFunc(func(context.Context, Printer) error { return nil }), nil
	})

	require.NoError(t, d.Dispatch(context.Background(), "noop", Input{}))
	assert.NotContains(t, buf.String(), "ERROR")

	require.Error(t, d.Dispatch(context.Background(), "get", Input{Args: []string{"9"}}))
	out := buf.String()
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "Command failed")
	assert.Contains(t, out, "command=get")
	assert.Contains(t, out, "kind=remote")
	assert.Contains(t, out, "Build 9 does not exist")
}
