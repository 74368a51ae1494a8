// SPDX-License-Identifier: GPL-2.0-or-later

package cache

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"

	"goquell/filesystem"
)

type asset struct{ name string }

// waiting reports how many callers share the in-flight load of key.
func (c *Cache[T]) waiting(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.items[filesystem.Normalize(key)]; ok {
		return e.waiters
	}
	return 0
}

func TestGetConcurrent(t *testing.T) {
	c := New[*asset]()
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	load := func() (*asset, error) {
		if calls.Add(1) == 1 {
			close(started)
		}
		<-release
		return &asset{"dev/flat"}, nil
	}

	const n = 32
	var wg sync.WaitGroup
	got := make([]*asset, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// mixed spellings map to one key
			key := "dev/flat"
			if i%2 == 1 {
				key = "DEV\\Flat"
			}
			v, err := c.Get(key, load)
			if err != nil {
				t.Errorf("Get: %v", err)
			}
			got[i] = v
		}(i)
	}

	// hold the load until every other caller is blocked on it
	<-started
	deadline := time.Now().Add(5 * time.Second)
	for c.waiting("dev/flat") < n-1 {
		if time.Now().After(deadline) {
			close(release)
			wg.Wait()
			t.Fatalf("%d of %d callers waiting on the load", c.waiting("dev/flat"), n-1)
		}
		time.Sleep(time.Millisecond)
	}
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("loader ran %d times, want 1", calls.Load())
	}
	for i := range got {
		if got[i] != got[0] {
			t.Fatalf("Get %d returned a different value", i)
		}
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestGetCachesErrors(t *testing.T) {
	c := New[int]()
	bad := errors.New("bad script")
	calls := 0
	load := func() (int, error) {
		calls++
		return 0, bad
	}
	_, err1 := c.Get("dev/missing", load)
	_, err2 := c.Get("dev/missing", load)
	if err1 != bad || err2 != bad {
		t.Errorf("errors = %v, %v, want %v", err1, err2, bad)
	}
	if calls != 1 {
		t.Errorf("loader ran %d times, want 1", calls)
	}
}

func TestGetPanic(t *testing.T) {
	c := New[string]()
	_, err := c.Get("boom", func() (string, error) { panic("kaputt") })
	if err == nil {
		t.Fatal("panic not converted to an error")
	}
	_, err2 := c.Get("boom", func() (string, error) { return "fine", nil })
	if err2 != err {
		t.Errorf("second Get = %v, want cached %v", err2, err)
	}
}

func TestKeys(t *testing.T) {
	c := New[int]()
	for _, k := range []string{"b", "A", "c/D"} {
		c.Get(k, func() (int, error) { return len(k), nil })
	}
	if got, want := c.Keys(), []string{"a", "b", "c/d"}; len(got) != 3 || got[0] != want[0] || got[1] != want[1] || got[2] != want[2] {
		t.Errorf("Keys = %v, want %v", got, want)
	}
}
