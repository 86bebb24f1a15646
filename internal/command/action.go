package command

import "context"

// NoParams is the parameter type of actions that take none
type NoParams struct{}

// Action triggers a state transition on the server. Params, when set, builds
// and validates the parameter object locally; a failure there is reported as
// a validation error and Do is never called. A nil result from Do prints nothing.
type Action[P, R any] struct {
	ID     string
	Params func() (P, error)
	Do     func(ctx context.Context, id string, params P) (*R, error)
}

func (a *Action[P, R]) Execute(ctx context.Context, out Printer) error {
	if a.ID == "" {
		return invalid(errMissingID)
	}

	var params P
	if a.Params != nil {
		p, err := a.Params()
		if err != nil {
			return invalid(err)
		}
		params = p
	}

	res, err := a.Do(ctx, a.ID, params)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	if err := out.Print(res); err != nil {
		return localIO(err)
	}
	return nil
}
