// OS-level file locking for cross-process coordination.
//
// fileLock wraps flock(2) / LockFileEx with a mutex that guards the file
// handle's lifetime. The mutex is held for the entire duration of the
// flock syscall so that Fd() cannot race with Close() on the same
// *os.File.
//
// Unlike the teacher's fileLock, which offers shared and exclusive modes
// for concurrent readers, crawdb takes only the single exclusive lock
// spec.md §4.6 describes: readers never lock, so there is no shared mode
// to support here.
//
// Callers use setFile(nil) before closing the underlying file. This
// blocks until any in-flight flock completes, then makes subsequent
// Lock/Unlock calls no-ops. After reopening, setFile(f) restores normal
// operation.
package crawdb

import (
	"os"
	"sync"
	"time"
)

// fileLock coordinates the OS-level advisory lock with safe handle
// teardown. The mu field serialises flock syscalls against setFile so
// that a concurrent Close cannot invalidate the fd mid-syscall.
type fileLock struct {
	mu sync.Mutex
	f  *os.File
}

// Lock blocks until the exclusive advisory lock on the handle's current
// file is held. It returns the time spent waiting so the caller can log
// slow acquisitions against Config.LockWaitLog. Returns 0, nil
// immediately if the handle has been cleared via setFile(nil).
func (l *fileLock) Lock() (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return 0, nil
	}
	start := time.Now()
	if err := l.lock(); err != nil {
		return time.Since(start), err
	}
	return time.Since(start), nil
}

// Unlock releases the flock. Returns nil immediately if the handle has
// been cleared via setFile(nil).
func (l *fileLock) Unlock() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	return l.unlock()
}

// setFile swaps the underlying file handle. Passing nil drains any
// in-flight flock (blocks until the mutex is available) and disables
// further locking. Used by Free and the re-indexer before closing the fd.
func (l *fileLock) setFile(f *os.File) {
	l.mu.Lock()
	l.f = f
	l.mu.Unlock()
}
