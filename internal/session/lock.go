package session

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"shootdesk/internal/config"
	"shootdesk/internal/services"
)

// Lock guards a session directory against concurrent editors. Only one
// shootdesk process may hold the lock at a time.
type Lock struct {
	handle *flock.Flock
	path   string
}

// AcquireLock takes the session directory lock without blocking. A held lock
// surfaces as a conflict error so the caller can tell the operator which
// directory is busy.
func AcquireLock(cfg *config.Config) (*Lock, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lockPath := filepath.Join(cfg.Paths.SessionDir, "shootdesk.lock")
	handle := flock.New(lockPath)
	ok, err := handle.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConflict, "store", "acquire lock",
			fmt.Sprintf("another shootdesk process is editing %s", cfg.Paths.SessionDir), nil)
	}
	return &Lock{handle: handle, path: lockPath}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock. Releasing a nil lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || l.handle == nil {
		return nil
	}
	return l.handle.Unlock()
}
