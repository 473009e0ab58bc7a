// Package ids provides the process-wide generator of object ids.
package ids

import (
	"math/rand/v2"
	"sync"
)

// Provider hands out unique, non-zero uint64 ids.
//
// Ids look random so that objects created on different workers are
// unlikely to collide. Each id is a bijective mix of a seeded counter, so a
// provider never repeats an id and keeps no record of the ones it gave out.
// Provider is safe for concurrent use.
type Provider struct {
	mu    sync.Mutex
	key   uint64
	n     uint64
	next  []uint64
	given int
}

// New creates a provider. A zero seed draws a random seed.
func New(seed uint64) *Provider {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Provider{key: seed * 0x9e3779b97f4a7c15}
}

// Pop returns the next id.
//
// Ids queued with SetNextIDs are returned first, in order. They are not
// checked against generated ids.
func (p *Provider) Pop() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.given++
	if len(p.next) > 0 {
		id := p.next[0]
		p.next = p.next[1:]
		return id
	}

	for {
		p.n++
		if id := mix(p.key + p.n); id != 0 {
			return id
		}
	}
}

// mix is the splitmix64 finalizer. Every step is invertible, so distinct
// inputs give distinct outputs.
func mix(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}

// SetNextIDs queues ids to be returned by the following calls to Pop.
// Used to make tests deterministic.
func (p *Provider) SetNextIDs(ids ...uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next = append(p.next, ids...)
}

// Given returns the number of ids handed out so far.
func (p *Provider) Given() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.given
}

// Default is the process-wide provider.
var Default = New(0)

// Pop returns the next id from Default.
func Pop() uint64 {
	return Default.Pop()
}
