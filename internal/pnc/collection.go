package pnc

import "context"

// PageFetcher returns the items starting at offset, at most pageSize of them,
// together with the total number of items in the result set.
type PageFetcher[T any] func(ctx context.Context, offset, pageSize int) (items []T, total int, err error)

// Collection is a lazily paginated, read-only view over a server-side result set.
//
// Pages are requested in increasing offset order starting at 0, one at a time,
// and only once the previous page has been consumed. Iteration stops when the
// number of yielded items reaches the reported total or a page comes back short.
// A Collection is single pass: issue a new query to iterate again.
//
// Collections are not safe for concurrent use.
type Collection[T any] struct {
	fetch    PageFetcher[T]
	pageSize int

	page    []T
	pos     int
	offset  int
	yielded int
	total   int

	fetched  bool
	lastPage bool
	done     bool

	cur T
	err error
}

// NewCollection returns a collection that pulls pages of pageSize items through fetch.
// No request is made until the first call to Next.
func NewCollection[T any](pageSize int, fetch PageFetcher[T]) *Collection[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Collection[T]{fetch: fetch, pageSize: pageSize}
}

// Next advances to the next item, fetching a new page when the current one is
// exhausted. It returns false at the end of the collection or after a fetch
// failure; check Err to tell the two apart.
func (c *Collection[T]) Next(ctx context.Context) bool {
	for {
		if c.done {
			return false
		}
		if c.fetched && c.yielded >= c.total {
			c.finish()
			return false
		}
		if c.pos < len(c.page) {
			c.cur = c.page[c.pos]
			c.pos++
			c.yielded++
			return true
		}
		if c.lastPage {
			c.finish()
			return false
		}
		if err := c.fetchPage(ctx); err != nil {
			c.err = err
			c.finish()
			return false
		}
	}
}

func (c *Collection[T]) fetchPage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	items, total, err := c.fetch(ctx, c.offset, c.pageSize)
	if err != nil {
		return err
	}
	c.fetched = true
	c.total = total
	c.page = items
	c.pos = 0
	c.offset += len(items)
	if len(items) < c.pageSize {
		c.lastPage = true
	}
	return nil
}

func (c *Collection[T]) finish() {
	c.done = true
	c.page = nil
	c.pos = 0
}

// Value returns the item Next advanced to
func (c *Collection[T]) Value() T {
	return c.cur
}

// Err returns the fetch error that ended iteration, if any
func (c *Collection[T]) Err() error {
	return c.err
}

// Total returns the result set size reported by the last fetched page, or 0
// before the first fetch.
func (c *Collection[T]) Total() int {
	return c.total
}

// PageSize returns the number of items requested per page
func (c *Collection[T]) PageSize() int {
	return c.pageSize
}
