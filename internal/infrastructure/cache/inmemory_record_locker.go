package cache

import (
	"context"
	"sync"
	"time"

	"github.com/erp/papelera/internal/domain/shared"
)

type lockSlot struct {
	sem     chan struct{}
	waiters int
}

// InMemoryRecordLocker serializes work per key inside one process.
// Suitable for single-instance deployments and tests.
type InMemoryRecordLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
	wait  time.Duration
}

// NewInMemoryRecordLocker creates a locker; callers give up after wait.
// A zero wait blocks until the context ends.
func NewInMemoryRecordLocker(wait time.Duration) *InMemoryRecordLocker {
	return &InMemoryRecordLocker{slots: make(map[string]*lockSlot), wait: wait}
}

// Lock acquires key, blocking while another caller holds it
func (l *InMemoryRecordLocker) Lock(ctx context.Context, key string) (func(), error) {
	slot := l.acquireSlot(key)

	var timeout <-chan time.Time
	if l.wait > 0 {
		t := time.NewTimer(l.wait)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case slot.sem <- struct{}{}:
	case <-ctx.Done():
		l.releaseSlot(key, slot)
		return nil, ctx.Err()
	case <-timeout:
		l.releaseSlot(key, slot)
		return nil, shared.ErrConcurrencyConflict.Withf("%s is busy, retry later", key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.sem
			l.releaseSlot(key, slot)
		})
	}, nil
}

func (l *InMemoryRecordLocker) acquireSlot(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{sem: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.waiters++
	return slot
}

// releaseSlot drops the slot once nobody holds or waits for it
func (l *InMemoryRecordLocker) releaseSlot(key string, slot *lockSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.waiters--
	if slot.waiters == 0 {
		delete(l.slots, key)
	}
}

// held returns the number of keys currently tracked
func (l *InMemoryRecordLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}
