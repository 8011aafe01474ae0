// Package lock provides per-session locking so concurrent guess
// submissions against the same game serialize in-process before they
// reach the database row lock.
package lock

import "sync"

// sessionMutex wraps a mutex with reference counting for cleanup.
type sessionMutex struct {
	mu       sync.Mutex
	refCount int
}

// SessionLock provides per-game locking keyed by session ID.
// Different games lock independently and may proceed in parallel.
type SessionLock struct {
	locks sync.Map // map[string]*sessionMutex
	pool  sync.Pool
}

// NewSessionLock creates a new SessionLock instance.
func NewSessionLock() *SessionLock {
	return &SessionLock{
		pool: sync.Pool{
			New: func() any {
				return &sessionMutex{}
			},
		},
	}
}

// getLock retrieves or creates a mutex for the given session ID.
func (sl *SessionLock) getLock(id string) *sessionMutex {
	if v, ok := sl.locks.Load(id); ok {
		return v.(*sessionMutex)
	}

	newLock := sl.pool.Get().(*sessionMutex)
	newLock.refCount = 0

	actual, loaded := sl.locks.LoadOrStore(id, newLock)
	if loaded {
		// Another goroutine created the lock first, return ours to pool.
		sl.pool.Put(newLock)
	}
	return actual.(*sessionMutex)
}

// Lock acquires the lock for a session.
func (sl *SessionLock) Lock(id string) {
	lock := sl.getLock(id)
	lock.mu.Lock()
	lock.refCount++
}

// Unlock releases the lock for a session.
func (sl *SessionLock) Unlock(id string) {
	if v, ok := sl.locks.Load(id); ok {
		lock := v.(*sessionMutex)
		lock.refCount--
		lock.mu.Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
// Returns true if the lock was acquired, false otherwise.
func (sl *SessionLock) TryLock(id string) bool {
	lock := sl.getLock(id)
	if lock.mu.TryLock() {
		lock.refCount++
		return true
	}
	return false
}

// Forget drops the mutex for a finished session. Safe to call while
// unlocked; a concurrent Lock simply recreates the entry.
func (sl *SessionLock) Forget(id string) {
	sl.locks.Delete(id)
}

// WithLock executes a function while holding the session's lock.
func (sl *SessionLock) WithLock(id string, fn func() error) error {
	sl.Lock(id)
	defer sl.Unlock(id)
	return fn()
}
