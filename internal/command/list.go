package command

import (
	"context"

	"github.com/schererja/pncctl/internal/pnc"
)

// List drains a remote collection and prints every element in server order.
// Scoping identifiers (e.g. the parent build of an artifact list) are bound
// into Open by the caller.
type List[T any] struct {
	Open    func(opts pnc.ListOptions) *pnc.Collection[T]
	Options pnc.ListOptions
}

func (l *List[T]) Execute(ctx context.Context, out Printer) error {
	items := l.Open(l.Options)
	for items.Next(ctx) {
		if err := out.Print(items.Value()); err != nil {
			return localIO(err)
		}
	}
	return items.Err()
}
