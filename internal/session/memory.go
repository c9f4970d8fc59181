package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

type entry[T any] struct {
	v       T
	touched time.Time
}

// MemoryStore is an in-process Store. Entries untouched for longer than
// the TTL are dropped by Sweep; a zero TTL keeps everything.
type MemoryStore[T any] struct {
	mu  sync.Mutex
	m   map[string]entry[T]
	ttl time.Duration
	now func() time.Time
}

func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{m: map[string]entry[T]{}, ttl: ttl, now: time.Now}
}

// Get returns the value at id. Reading counts as activity for Sweep.
func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if ok {
		e.touched = s.now()
		s.m[id] = e
	}
	return e.v, ok, nil
}

func (s *MemoryStore[T]) Put(_ context.Context, id string, v T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = entry[T]{v: v, touched: s.now()}
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}

func (s *MemoryStore[T]) Update(_ context.Context, id string, fn func(T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("id %s: %w", id, ErrNotFound)
	}
	v, err := fn(e.v)
	if err != nil {
		return e.v, err
	}
	s.m[id] = entry[T]{v: v, touched: s.now()}
	return v, nil
}

// Sweep drops expired entries and reports how many were removed.
func (s *MemoryStore[T]) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	n := 0
	for id, e := range s.m {
		if e.touched.Before(cutoff) {
			delete(s.m, id)
			n++
		}
	}
	return n
}

// Janitor runs Sweep every interval until ctx is done.
func (s *MemoryStore[T]) Janitor(ctx context.Context, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			s.Sweep()
		}
	}
}

func (s *MemoryStore[T]) NewID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
