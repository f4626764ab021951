package store

import (
	"fmt"

	"github.com/gofrs/flock"
)

// dbLock is an advisory lock on a file next to the database.
type dbLock struct {
	flock *flock.Flock
}

// acquireLock takes the lock without blocking. A lock held by another
// process yields ErrLocked.
func acquireLock(path string) (*dbLock, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrLocked, path)
	}
	return &dbLock{flock: fl}, nil
}

// release unlocks; it is a no-op on a nil lock.
func (l *dbLock) release() {
	if l == nil {
		return
	}
	_ = l.flock.Unlock()
}
