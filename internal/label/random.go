package label

import (
	"fmt"
	"math/rand/v2"
)

// Random draws identifiers uniformly from [0, bound) and rejects ones already
// issued. The cost of a call grows as the used set approaches the bound, so
// each call is capped at maxAttempts draws; past that it fails with
// ErrExhausted instead of spinning.
type Random struct {
	rng         *rand.Rand
	used        map[int]struct{}
	bound       int
	maxAttempts int
}

// NewRandom returns a rejection-sampling allocator. A nil seed seeds the
// generator from the runtime's entropy source.
func NewRandom(bound, maxAttempts int, seed *uint64) (*Random, error) {
	if err := checkBound(bound); err != nil {
		return nil, err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var src rand.Source
	if seed != nil {
		src = rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)
	} else {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &Random{
		rng:         rand.New(src),
		used:        make(map[int]struct{}),
		bound:       bound,
		maxAttempts: maxAttempts,
	}, nil
}

// Allocate draws until it finds an identifier not issued before.
func (r *Random) Allocate() (int, error) {
	if len(r.used) >= r.bound {
		return 0, fmt.Errorf("%w: all %d identifiers issued", ErrExhausted, r.bound)
	}
	for range r.maxAttempts {
		id := r.rng.IntN(r.bound)
		if _, taken := r.used[id]; taken {
			continue
		}
		r.used[id] = struct{}{}
		return id, nil
	}
	return 0, fmt.Errorf("%w: no free identifier after %d attempts (%d of %d used)", ErrExhausted, r.maxAttempts, len(r.used), r.bound)
}

// Bound returns the exclusive upper limit of the identifier space.
func (r *Random) Bound() int { return r.bound }

// Issued reports how many identifiers have been handed out.
func (r *Random) Issued() int { return len(r.used) }
