// Package session implements the process-wide state machine tracking which
// database, if any, is currently decrypted on disk, plus the informational
// registry of every database path this user has created or opened.
package session

import (
	"github.com/byteptr/steel/internal/fsops"
	"github.com/byteptr/steel/internal/steelerr"
)

// State is one of the two states the session can be in.
type State int

const (
	Closed State = iota
	Open
)

// Session is the explicit value threaded through the public API in place
// of the original's global lock-file/registry state; its persistence is
// isolated behind the LockStore and Registry interfaces so tests can swap
// in in-memory stores.
type Session struct {
	lock     LockStore
	registry Registry
}

// New builds a Session backed by the real $HOME/.steel_open lock file and
// $HOME/.steel_dbs registry.
func New() (*Session, error) {
	lock, err := NewFileLockStore()
	if err != nil {
		return nil, err
	}
	registry, err := NewFileRegistry()
	if err != nil {
		return nil, err
	}
	return &Session{lock: lock, registry: registry}, nil
}

// NewWithStores builds a Session over caller-supplied stores, for tests.
func NewWithStores(lock LockStore, registry Registry) *Session {
	return &Session{lock: lock, registry: registry}
}

// LockFilePath returns the real session-lock file's path and true, if this
// Session is backed by the filesystem. Callers use it to take an
// OS-level advisory lock around a Container operation, per the
// concurrency model's hardening note; an in-memory Session (as used in
// tests) has no such path and returns false.
func (s *Session) LockFilePath() (string, bool) {
	if fl, ok := s.lock.(*fileLockStore); ok {
		return fl.path, true
	}
	return "", false
}

// Status reports the current state and, if Open, the locked path. A lock
// naming a path that no longer exists on disk is reported as Closed: a
// stale lock is not a usable open session.
func (s *Session) Status() (State, string, error) {
	path, ok, err := s.lock.Read()
	if err != nil {
		return Closed, "", steelerr.Io("read session lock", err)
	}
	if !ok {
		return Closed, "", nil
	}
	if !fsops.Exists(path) {
		return Closed, path, nil
	}
	return Open, path, nil
}

// MarkOpen transitions Closed -> Open(path). It fails with
// AlreadyOpenError if a session is already open, stale or not — a stale
// lock must be cleared explicitly (via ListStatus) before a new session
// can open.
func (s *Session) MarkOpen(path string) error {
	lockedPath, ok, err := s.lock.Read()
	if err != nil {
		return steelerr.Io("read session lock", err)
	}
	if ok {
		return &steelerr.AlreadyOpenError{Path: lockedPath}
	}
	if err := s.lock.Write(path); err != nil {
		return steelerr.Io("write session lock", err)
	}
	return nil
}

// MarkClosed transitions Open(p) -> Closed by removing the lock file.
func (s *Session) MarkClosed() error {
	if err := s.lock.Remove(); err != nil {
		return steelerr.Io("remove session lock", err)
	}
	return nil
}

// Track adds path to the informational registry.
func (s *Session) Track(path string) error {
	if err := s.registry.Add(path); err != nil {
		return steelerr.Io("update tracking registry", err)
	}
	return nil
}

// Untrack removes path from the informational registry.
func (s *Session) Untrack(path string) error {
	if err := s.registry.Remove(path); err != nil {
		return steelerr.Io("update tracking registry", err)
	}
	return nil
}

// StatusEntry describes one tracked database path and whether it still
// exists on disk.
type StatusEntry struct {
	Path  string
	Stale bool
}

// ListStatus returns every tracked path with its staleness, removing stale
// entries from the registry (and clearing a stale session lock, if the
// locked path itself no longer exists) as a side effect — this is what
// lets a dangling lock from a deleted database heal itself on the next
// list-status call.
func (s *Session) ListStatus() ([]StatusEntry, error) {
	paths, err := s.registry.List()
	if err != nil {
		return nil, steelerr.Io("read tracking registry", err)
	}

	entries := make([]StatusEntry, 0, len(paths))
	for _, p := range paths {
		stale := !fsops.Exists(p)
		entries = append(entries, StatusEntry{Path: p, Stale: stale})
		if stale {
			if err := s.registry.Remove(p); err != nil {
				return nil, steelerr.Io("prune tracking registry", err)
			}
		}
	}

	lockedPath, ok, err := s.lock.Read()
	if err != nil {
		return nil, steelerr.Io("read session lock", err)
	}
	if ok && !fsops.Exists(lockedPath) {
		if err := s.lock.Remove(); err != nil {
			return nil, steelerr.Io("remove stale session lock", err)
		}
	}

	return entries, nil
}
