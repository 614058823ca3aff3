// Copyright 2025 The go-resample Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestParallelForCoversRange(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	for _, n := range []int{1, 3, 4, 7, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			rows := make([]int, n)
			pool.ParallelFor(n, func(start, end int) {
				for i := start; i < end; i++ {
					rows[i]++
				}
			})
			for i, v := range rows {
				if v != 1 {
					t.Errorf("row %d visited %d times, want 1", i, v)
				}
			}
		})
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})
	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestEach(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 37
	var count atomic.Int32
	strips := make([]int, n)
	err := pool.Each(n, func(i int) error {
		strips[i] = i * 2
		count.Add(1)
		return nil
	})
	if err != nil {
		t.Fatalf("Each: %v", err)
	}
	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
	for i, v := range strips {
		if v != i*2 {
			t.Errorf("strips[%d] = %d, want %d", i, v, i*2)
		}
	}
}

func TestEachJoinsErrors(t *testing.T) {
	pool := New(3)
	defer pool.Close()

	errOdd := errors.New("odd strip")
	var ran atomic.Int32
	err := pool.Each(10, func(i int) error {
		ran.Add(1)
		if i%2 == 1 {
			return fmt.Errorf("strip %d: %w", i, errOdd)
		}
		return nil
	})
	if !errors.Is(err, errOdd) {
		t.Fatalf("Each error = %v, want wrapped %v", err, errOdd)
	}
	if ran.Load() != 10 {
		t.Errorf("ran %d jobs, want 10", ran.Load())
	}
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close()
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})
	if err := pool.Each(n, func(i int) error {
		results[i]++
		return nil
	}); err != nil {
		t.Fatalf("Each on closed pool: %v", err)
	}
	for i := range n {
		if results[i] != i*2+1 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2+1)
		}
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(1000, func(start, end int) {
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkEach(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = pool.Each(64, func(i int) error {
			_ = i * i
			return nil
		})
	}
}
