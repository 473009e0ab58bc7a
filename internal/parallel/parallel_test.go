package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinWork: 16}

	var counter int64
	seen := make([]int32, 1000)
	For(len(seen), 1, func(i int) {
		atomic.AddInt64(&counter, 1)
		atomic.AddInt32(&seen[i], 1)
	}, cfg)

	if counter != int64(len(seen)) {
		t.Errorf("Expected %d, got %d", len(seen), counter)
	}
	for i, n := range seen {
		if n != 1 {
			t.Fatalf("iteration %d ran %d times", i, n)
		}
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	order := make([]int, 0, 100)
	For(100, 1000, func(i int) {
		order = append(order, i)
	}, cfg)

	for i, v := range order {
		if v != i {
			t.Fatalf("sequential order broken at %d: got %d", i, v)
		}
	}
	if len(order) != 100 {
		t.Errorf("Expected 100, got %d", len(order))
	}
}

func TestFor_SmallWork(t *testing.T) {
	// Too little work runs on the calling goroutine, in order.
	cfg := DefaultConfig()

	var last = -1
	For(10, 1, func(i int) {
		if i != last+1 {
			t.Errorf("out of order: %d after %d", i, last)
		}
		last = i
	}, cfg)

	if last != 9 {
		t.Errorf("Expected last 9, got %d", last)
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, 64, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		seq := Config{Enabled: false}
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, 64, func(j int) {
				atomic.AddInt64(&sum, int64(j))
			}, seq)
		}
	})
}
