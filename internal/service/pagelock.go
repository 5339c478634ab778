package service

import (
	"sync"
)

// pageLocks serializes orchestrated writes per page id. The revision
// sequencer's read-max-then-insert is only safe when no two writers to the
// same page interleave, so UpdatePage holds the page's lock for the whole
// transaction. Entries are reference-counted and removed when the last
// holder releases, keeping the map bounded by the number of in-flight
// writes.
type pageLocks struct {
	mu    sync.Mutex
	locks map[int64]*pageLock
}

type pageLock struct {
	mu   sync.Mutex
	refs int
}

func newPageLocks() *pageLocks {
	return &pageLocks{locks: make(map[int64]*pageLock)}
}

func (l *pageLocks) lock(pageID int64) {
	l.mu.Lock()
	entry, ok := l.locks[pageID]
	if !ok {
		entry = &pageLock{}
		l.locks[pageID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *pageLocks) unlock(pageID int64) {
	l.mu.Lock()
	entry := l.locks[pageID]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, pageID)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
