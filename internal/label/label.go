package label

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when no unused identifier can be produced.
var ErrExhausted = errors.New("label space exhausted")

// Kind names an allocation strategy.
type Kind string

const (
	KindCounter Kind = "counter"
	KindRandom  Kind = "random"
)

// DefaultMaxAttempts caps the number of draws the random allocator makes
// per call before giving up.
const DefaultMaxAttempts = 1000

// Allocator produces identifiers in [0, Bound()).
type Allocator interface {
	Allocate() (int, error)
	Bound() int
}

// Options configures New.
type Options struct {
	Kind        Kind
	Bound       int
	MaxAttempts int
	// Seed is only used by the random allocator. Nil means a random seed.
	Seed *uint64
}

// New builds the allocator named by opts.Kind. An empty kind selects the
// counter allocator.
func New(opts Options) (Allocator, error) {
	switch opts.Kind {
	case "", KindCounter:
		return NewCounter(opts.Bound)
	case KindRandom:
		return NewRandom(opts.Bound, opts.MaxAttempts, opts.Seed)
	default:
		return nil, fmt.Errorf("unknown label allocator %q: must be %q or %q", opts.Kind, KindCounter, KindRandom)
	}
}

// ParseKind validates a user-supplied allocator name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCounter, KindRandom:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown label allocator %q: must be %q or %q", s, KindCounter, KindRandom)
	}
}

func checkBound(bound int) error {
	if bound <= 0 {
		return fmt.Errorf("label bound must be positive, got %d", bound)
	}
	return nil
}
