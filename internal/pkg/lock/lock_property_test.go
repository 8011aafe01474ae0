// Package lock property-based tests for per-session serialization.
package lock

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"pgregory.net/rapid"
)

// TestConcurrentCounterSafetyProperty tests that concurrent operations
// guarded by the same session's lock behave as if executed sequentially.
func TestConcurrentCounterSafetyProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numOps := rapid.IntRange(2, 20).Draw(t, "numOps")
		gameID := rapid.StringMatching(`game-[0-9a-f]{8}`).Draw(t, "gameID")

		sl := NewSessionLock()

		counter := 0
		var wg sync.WaitGroup
		wg.Add(numOps)

		for i := 0; i < numOps; i++ {
			go func() {
				defer wg.Done()
				sl.Lock(gameID)
				defer sl.Unlock(gameID)
				// Read-modify-write, racy without the lock.
				counter++
			}()
		}

		wg.Wait()

		if counter != numOps {
			t.Fatalf("Counter mismatch with locking: expected %d, got %d", numOps, counter)
		}
	})
}

// TestWithLockSerializationProperty tests that WithLock serializes
// closures against the same session.
func TestWithLockSerializationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numOps := rapid.IntRange(5, 30).Draw(t, "numOps")
		gameID := rapid.StringMatching(`[0-9a-f]{8}`).Draw(t, "gameID")

		sl := NewSessionLock()

		inSection := 0
		maxInSection := 0
		var wg sync.WaitGroup
		wg.Add(numOps)

		for i := 0; i < numOps; i++ {
			go func() {
				defer wg.Done()
				_ = sl.WithLock(gameID, func() error {
					inSection++
					if inSection > maxInSection {
						maxInSection = inSection
					}
					inSection--
					return nil
				})
			}()
		}

		wg.Wait()

		if maxInSection != 1 {
			t.Fatalf("Critical section held by %d goroutines at once, want 1", maxInSection)
		}
	})
}

// TestIndependentSessionsProperty tests that locks for different
// sessions do not serialize against each other's state.
func TestIndependentSessionsProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numSessions := rapid.IntRange(2, 10).Draw(t, "numSessions")
		opsPerSession := rapid.IntRange(5, 20).Draw(t, "opsPerSession")

		sl := NewSessionLock()

		counters := make([]int, numSessions)
		var wg sync.WaitGroup
		wg.Add(numSessions * opsPerSession)

		for s := 0; s < numSessions; s++ {
			id := fmt.Sprintf("game-%d", s)
			for j := 0; j < opsPerSession; j++ {
				go func(idx int, id string) {
					defer wg.Done()
					sl.Lock(id)
					defer sl.Unlock(id)
					counters[idx]++
				}(s, id)
			}
		}

		wg.Wait()

		for s := 0; s < numSessions; s++ {
			if counters[s] != opsPerSession {
				t.Fatalf("Session %d counter = %d, want %d", s, counters[s], opsPerSession)
			}
		}
	})
}

// TestTryLockExclusivityProperty tests that TryLock never hands the
// same session's lock to two holders and that the lock is free again
// once every holder has released.
func TestTryLockExclusivityProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numAttempts := rapid.IntRange(5, 20).Draw(t, "numAttempts")
		gameID := rapid.StringMatching(`[0-9a-f]{12}`).Draw(t, "gameID")

		sl := NewSessionLock()

		var successCount atomic.Int32
		var wg sync.WaitGroup
		wg.Add(numAttempts)

		startCh := make(chan struct{})

		for i := 0; i < numAttempts; i++ {
			go func() {
				defer wg.Done()
				<-startCh

				if sl.TryLock(gameID) {
					successCount.Add(1)
					sl.Unlock(gameID)
				}
			}()
		}

		close(startCh)
		wg.Wait()

		if successCount.Load() < 1 {
			t.Fatalf("At least one TryLock should succeed, got %d successes", successCount.Load())
		}

		if !sl.TryLock(gameID) {
			t.Fatal("Lock should be available after all holders released")
		}
		sl.Unlock(gameID)
	})
}

// TestForgetReleasesSessionProperty tests that forgetting a finished
// session leaves the lock usable if the session shows up again.
func TestForgetReleasesSessionProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numCycles := rapid.IntRange(1, 20).Draw(t, "numCycles")
		gameID := rapid.StringMatching(`[0-9a-f]{8}`).Draw(t, "gameID")

		sl := NewSessionLock()

		for i := 0; i < numCycles; i++ {
			sl.Lock(gameID)
			sl.Unlock(gameID)
			sl.Forget(gameID)
		}

		if !sl.TryLock(gameID) {
			t.Fatal("Lock should be available after Forget")
		}
		sl.Unlock(gameID)
	})
}
