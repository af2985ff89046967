package core

import (
	"errors"
	"sync"
)

// ErrBarrierBroken is returned to every party once a barrier has been broken.
var ErrBarrierBroken = errors.New("core: barrier broken")

// Barrier is a reusable rendezvous point for a fixed number of goroutines.
// In every round exactly one caller, the last one to arrive, is elected.
type Barrier struct {
	mu   sync.Mutex
	cond *sync.Cond

	parties    int
	waiting    int
	generation uint64
	broken     bool
}

// NewBarrier returns a barrier for the given number of parties.
func NewBarrier(parties int) *Barrier {
	if parties <= 0 {
		parties = 1
	}
	b := &Barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Parties reports how many callers complete a round.
func (b *Barrier) Parties() int { return b.parties }

// Wait blocks until all parties have arrived. The last caller to arrive
// returns elected == true; everybody else returns false. All callers are
// released together, so the elected party's follow-up work must be fenced
// by a second Wait if others depend on it.
func (b *Barrier) Wait() (elected bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.broken {
		return false, ErrBarrierBroken
	}

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return true, nil
	}

	for gen == b.generation && !b.broken {
		b.cond.Wait()
	}
	if gen == b.generation {
		return false, ErrBarrierBroken
	}
	return false, nil
}

// Break releases all current and future waiters with ErrBarrierBroken.
// A party that fails mid-round calls Break so the others do not block forever.
func (b *Barrier) Break() {
	b.mu.Lock()
	b.broken = true
	b.mu.Unlock()
	b.cond.Broadcast()
}
