package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrOutputBusy reports that another run holds the output folder lock.
var ErrOutputBusy = errors.New("output folder is in use by another run")

// FolderLock is an advisory lock on an output folder.
type FolderLock struct {
	lock   *flock.Flock
	folder string
}

// LockPath returns the lock file used for folder under lockDir.
func LockPath(lockDir, folder string) string {
	abs, err := filepath.Abs(folder)
	if err != nil {
		abs = filepath.Clean(folder)
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:8])+".lock")
}

// TryLockFolder acquires the lock for folder without blocking.
func TryLockFolder(lockDir, folder string) (*FolderLock, error) {
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	lock := flock.New(LockPath(lockDir, folder))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrOutputBusy, folder)
	}
	return &FolderLock{lock: lock, folder: folder}, nil
}

// Folder returns the locked folder.
func (l *FolderLock) Folder() string { return l.folder }

// Unlock releases the lock. It is safe to call on a nil lock.
func (l *FolderLock) Unlock() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
