// Copyright 2025 go-resample Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package filtercache shares generated kernel blocks between resize
// requests.
//
// A Cache is keyed by (source size, target size, filter type, lanes). Entries
// are reference counted: Acquire returns a Handle that keeps its entry alive
// until Release is called, and entries are only evicted while nobody holds
// them. The cache is a small MRU-ordered list; when it grows beyond its
// capacity, each Release evicts at most one unreferenced entry, starting from
// the least recently used end.
//
//	h, err := cache.Acquire(filtercache.Key{Source: 4000, Target: 800, Type: filter.Catrom, Lanes: 8})
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//	kernels := h.Packed()
package filtercache

import (
	"container/list"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/ajroetker/go-resample/resample/contrib/filter"
)

// DefaultCapacity is the number of entries kept once they are unreferenced.
const DefaultCapacity = 4

// Key identifies a kernel block. Lanes is 0 for the scalar fixed-point
// block, or the vector width of the packed representation.
type Key struct {
	Source int
	Target int
	Type   filter.Type
	Lanes  int
}

func (k Key) String() string {
	return fmt.Sprintf("%d->%d/%v/x%d", k.Source, k.Target, k.Type, k.Lanes)
}

type entry struct {
	key    Key
	block  *filter.Block
	packed *filter.Packed
	refs   int
	elem   *list.Element
}

// Stats counts cache activity.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
	Len       int
}

// Cache is a thread-safe, reference counted kernel block cache.
// The zero value is not usable; create caches with New.
type Cache struct {
	mu       sync.Mutex
	entries  *list.List // of *entry, most recently used first
	capacity int
	logger   *slog.Logger
	stats    Stats
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger that receives eviction events at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		c.logger = l
	}
}

// New creates a cache that keeps up to capacity entries once they are no
// longer referenced. If capacity <= 0, DefaultCapacity is used.
func New(capacity int, opts ...Option) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache{
		entries:  list.New(),
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Acquire returns a handle to the block for key, building it on a miss.
// Building happens under the cache lock, so concurrent acquires of the same
// key always observe the same block.
func (c *Cache) Acquire(key Key) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.entries.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry)
		if e.key == key {
			e.refs++
			c.entries.MoveToFront(el)
			c.stats.Hits++
			return newHandle(c, e), nil
		}
	}

	e, err := build(key)
	if err != nil {
		return nil, err
	}
	e.refs = 1
	e.elem = c.entries.PushFront(e)
	c.stats.Misses++
	return newHandle(c, e), nil
}

// Do acquires the block for key, calls fn with it and releases it on every
// return path, including a panic in fn.
func (c *Cache) Do(key Key, fn func(h *Handle) error) error {
	h, err := c.Acquire(key)
	if err != nil {
		return err
	}
	defer h.Release()
	return fn(h)
}

func build(key Key) (*entry, error) {
	b, err := filter.Build(key.Source, key.Target, key.Type)
	if err != nil {
		return nil, err
	}
	e := &entry{key: key, block: b}
	if key.Lanes > 0 {
		if e.packed, err = filter.Pack(b, key.Lanes); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (c *Cache) release(e *entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.refs--
	if c.entries.Len() <= c.capacity {
		return
	}
	for el := c.entries.Back(); el != nil; el = el.Prev() {
		victim := el.Value.(*entry)
		if victim.refs <= 0 {
			c.entries.Remove(el)
			c.stats.Evictions++
			if c.logger != nil {
				c.logger.Debug("filtercache: evicted", "key", victim.key, "len", c.entries.Len())
			}
			return
		}
	}
}

// Len returns the number of cached entries, referenced or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// Capacity returns the number of unreferenced entries the cache retains.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Len = c.entries.Len()
	return s
}

// Handle is one reference to a cached block. The block stays valid until
// Release is called. A handle that becomes unreachable without being
// released is released by the garbage collector.
type Handle struct {
	ref     *handleRef
	cleanup runtime.Cleanup
}

// handleRef is kept apart from Handle so the cleanup can run once the
// Handle itself is unreachable.
type handleRef struct {
	cache    *Cache
	entry    *entry
	released atomic.Bool
}

func (r *handleRef) release() {
	if r.released.CompareAndSwap(false, true) {
		r.cache.release(r.entry)
	}
}

func newHandle(c *Cache, e *entry) *Handle {
	ref := &handleRef{cache: c, entry: e}
	h := &Handle{ref: ref}
	h.cleanup = runtime.AddCleanup(h, func(r *handleRef) { r.release() }, ref)
	return h
}

// Key returns the key the handle was acquired with.
func (h *Handle) Key() Key { return h.ref.entry.key }

// Block returns the scalar kernel block.
func (h *Handle) Block() *filter.Block { return h.ref.entry.block }

// Packed returns the lane-packed kernels, or nil for a scalar key.
func (h *Handle) Packed() *filter.Packed { return h.ref.entry.packed }

// Release gives up the reference. Calling it more than once is safe.
func (h *Handle) Release() {
	h.cleanup.Stop()
	h.ref.release()
}
