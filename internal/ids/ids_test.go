package ids

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopUnique(t *testing.T) {
	p := New(42)
	seen := make(map[uint64]bool)
	for i := 0; i < 10000; i++ {
		id := p.Pop()
		require.NotZero(t, id)
		require.False(t, seen[id], "id %d returned twice", id)
		seen[id] = true
	}
	assert.Equal(t, 10000, p.Given())
}

func TestPopKeepsNoPerIDState(t *testing.T) {
	p := New(3)
	for i := 0; i < 100000; i++ {
		p.Pop()
	}
	assert.Equal(t, 100000, p.Given())
	assert.Equal(t, uint64(100000), p.n)
	assert.Empty(t, p.next)
}

func TestMixIsInjective(t *testing.T) {
	seen := make(map[uint64]uint64)
	for _, base := range []uint64{0, 1 << 32, ^uint64(0) - 5000} {
		for i := uint64(0); i < 5000; i++ {
			in := base + i
			out := mix(in)
			if prev, dup := seen[out]; dup && prev != in {
				t.Fatalf("mix(%d) == mix(%d)", in, prev)
			}
			seen[out] = in
		}
	}
}

func TestSeededProvidersAreDeterministic(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Pop(), b.Pop())
	}
}

func TestSetNextIDs(t *testing.T) {
	p := New(1)
	p.SetNextIDs(10, 20)

	assert.Equal(t, uint64(10), p.Pop())
	assert.Equal(t, uint64(20), p.Pop())
	assert.NotContains(t, []uint64{10, 20}, p.Pop())
	assert.Equal(t, 3, p.Given())
}

func TestPopConcurrent(t *testing.T) {
	p := New(0)
	const workers, perWorker = 8, 500

	results := make(chan uint64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				results <- p.Pop()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[uint64]bool)
	for id := range results {
		assert.False(t, seen[id])
		seen[id] = true
	}
	assert.Len(t, seen, workers*perWorker)
}
