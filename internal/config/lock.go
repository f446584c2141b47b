package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is created next to the user config while it is rewritten.
const LockFileName = ".config.lock"

// FileLock is an advisory lock shared by every process that rewrites the
// user config.
type FileLock struct {
	fl *flock.Flock
}

// NewFileLock returns an unheld lock on <dir>/.config.lock.
func NewFileLock(dir string) *FileLock {
	return &FileLock{fl: flock.New(filepath.Join(dir, LockFileName))}
}

// Lock blocks until the lock is held. The directory is created if needed.
func (l *FileLock) Lock() error {
	return l.acquire(l.fl.Lock)
}

// TryLock takes the lock only if it is free and reports whether it did.
func (l *FileLock) TryLock() (bool, error) {
	var ok bool
	err := l.acquire(func() (err error) {
		ok, err = l.fl.TryLock()
		return err
	})
	return ok, err
}

func (l *FileLock) acquire(take func() error) error {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := take(); err != nil {
		return fmt.Errorf("failed to acquire %s: %w", l.fl.Path(), err)
	}
	return nil
}

// Unlock releases the lock. It is a no-op when the lock is not held.
func (l *FileLock) Unlock() error {
	if !l.fl.Locked() {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("failed to release %s: %w", l.fl.Path(), err)
	}
	return nil
}

// Path returns the lock file path.
func (l *FileLock) Path() string {
	return l.fl.Path()
}
