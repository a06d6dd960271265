package label

import "fmt"

// Counter issues 0, 1, 2, ... until the bound is reached. Output built with
// a Counter is deterministic for a given input.
type Counter struct {
	next  int
	bound int
}

// NewCounter returns a counter allocator over [0, bound).
func NewCounter(bound int) (*Counter, error) {
	if err := checkBound(bound); err != nil {
		return nil, err
	}
	return &Counter{bound: bound}, nil
}

// Allocate returns the next identifier.
func (c *Counter) Allocate() (int, error) {
	if c.next >= c.bound {
		return 0, fmt.Errorf("%w: all %d identifiers issued", ErrExhausted, c.bound)
	}
	id := c.next
	c.next++
	return id, nil
}

// Bound returns the exclusive upper limit of the identifier space.
func (c *Counter) Bound() int { return c.bound }

// Issued reports how many identifiers have been handed out.
func (c *Counter) Issued() int { return c.next }
