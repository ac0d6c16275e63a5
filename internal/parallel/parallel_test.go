package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 10000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Test that small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForRange(t *testing.T) {
	cfg := DefaultConfig()

	n := 10000
	covered := make([]bool, n)

	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			covered[i] = true
		}
	}, cfg)

	for i, ok := range covered {
		if !ok {
			t.Fatalf("Index %d not covered", i)
		}
	}
}

func TestForRange_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var calls, total int
	ForRange(100, func(start, end int) {
		calls++
		total += end - start
	}, cfg)

	if calls != 1 {
		t.Errorf("Sequential ForRange should make a single call, got %d", calls)
	}
	if total != 100 {
		t.Errorf("Expected 100 items covered, got %d", total)
	}
}

func TestForRange_ChunksDisjoint(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 1000
	var hits = make([]int32, n)

	ForRange(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	}, cfg)

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("Index %d visited %d times, want exactly 1", i, h)
		}
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 100000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}

func BenchmarkForRange(b *testing.B) {
	cfg := DefaultConfig()
	n := 100000
	src := make([]float64, n)
	dst := make([]float64, n)
	for i := range src {
		src[i] = float64(i)
	}

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			ForRange(n, func(s, e int) {
				for j := s; j < e; j++ {
					dst[j] = src[j] * 2
				}
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			ForRange(n, func(s, e int) {
				for j := s; j < e; j++ {
					dst[j] = src[j] * 2
				}
			}, cfgSeq)
		}
	})
}
