//go:build !windows

package fsops

import (
	"os"

	"golang.org/x/sys/unix"
)

// WithExclusiveLock opens path (creating it if absent), takes an OS-level
// advisory exclusive flock for the duration of fn, and releases it
// afterward. This hardens the session lock file against two processes
// racing the same database, per the concurrency model's "SHOULD acquire an
// OS-level advisory lock" note — it is not required for a single serial
// caller, only for overlapping ones.
func WithExclusiveLock(path string, fn func() error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	return fn()
}
