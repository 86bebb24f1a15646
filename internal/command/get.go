package command

import "context"

// GetOne fetches a single entity by identifier and prints it
type GetOne[T any] struct {
	ID    string
	Fetch func(ctx context.Context, id string) (*T, error)
}

func (g *GetOne[T]) Execute(ctx context.Context, out Printer) error {
	if g.ID == "" {
		return invalid(errMissingID)
	}
	v, err := g.Fetch(ctx, g.ID)
	if err != nil {
		return err
	}
	if err := out.Print(v); err != nil {
		return localIO(err)
	}
	return nil
}
