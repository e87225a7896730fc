//go:build windows

package fsops

import "os"

// WithExclusiveLock runs fn without an OS-level lock. Windows mandatory
// file locking semantics differ enough from the flock-based hardening this
// repo targets that we fall back to relying on the session-lock file's
// presence alone, same as running without the hardening measure at all.
func WithExclusiveLock(path string, fn func() error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	f.Close()

	return fn()
}
