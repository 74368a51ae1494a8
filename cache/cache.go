// SPDX-License-Identifier: GPL-2.0-or-later

// Package cache memoizes asset loads. Each key is loaded at most once;
// concurrent requests for a key wait for the first load and share its
// result, including its error.
package cache

import (
	"sort"
	"sync"

	"github.com/pkg/errors"

	"goquell/filesystem"
)

type entry[T any] struct {
	done  chan struct{}
	value T
	err   error

	// callers blocked on done, guarded by Cache.mu
	waiters int
}

type Cache[T any] struct {
	mu    sync.Mutex
	items map[string]*entry[T]
}

func New[T any]() *Cache[T] {
	return &Cache[T]{items: make(map[string]*entry[T])}
}

// Get returns the value for key, running load if no request for key has
// been made before. Failures are cached like values.
func (c *Cache[T]) Get(key string, load func() (T, error)) (T, error) {
	key = filesystem.Normalize(key)
	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		e.waiters++
		c.mu.Unlock()
		<-e.done
		return e.value, e.err
	}
	e := &entry[T]{done: make(chan struct{})}
	c.items[key] = e
	c.mu.Unlock()

	defer close(e.done)
	e.value, e.err = run(key, load)
	return e.value, e.err
}

func run[T any](key string, load func() (T, error)) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v = zero
			err = errors.Errorf("loading %s panicked: %v", key, r)
		}
	}()
	return load()
}

func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Keys returns the normalized keys in sorted order.
func (c *Cache[T]) Keys() []string {
	c.mu.Lock()
	keys := make([]string, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	c.mu.Unlock()
	sort.Strings(keys)
	return keys
}
