package parallel

import (
	"sync/atomic"
	"testing"
)

func TestParallelize_CoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{name: "Zero items", items: 0},
		{name: "Single item", items: 1},
		{name: "Fewer items than cores", items: 3},
		{name: "Many items", items: 10000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]int32, tt.items)
			Parallelize(tt.items, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&counts[i], 1)
				}
			})
			for i, n := range counts {
				if n != 1 {
					t.Errorf("index %d visited %d times, want 1", i, n)
				}
			}
		})
	}
}

func TestParallelizeWithThreshold_SequentialBelowThreshold(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		if start != 0 || end != 10 {
			t.Errorf("range = [%d, %d), want [0, 10)", start, end)
		}
	})
	if calls != 1 {
		t.Errorf("fn called %d times, want 1", calls)
	}
}

func TestParallelizeWithThreshold_ParallelAboveThreshold(t *testing.T) {
	const items = 5000
	counts := make([]int32, items)
	ParallelizeWithThreshold(items, 100, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&counts[i], 1)
		}
	})
	for i, n := range counts {
		if n != 1 {
			t.Errorf("index %d visited %d times, want 1", i, n)
		}
	}
}
