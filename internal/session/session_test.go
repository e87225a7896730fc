package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/byteptr/steel/internal/steelerr"
)

// memLockStore and memRegistry let session tests run without touching
// $HOME, per the design note calling for a substitutable persistence layer.
type memLockStore struct {
	path string
	set  bool
}

func (m *memLockStore) Read() (string, bool, error) { return m.path, m.set, nil }
func (m *memLockStore) Write(path string) error     { m.path, m.set = path, true; return nil }
func (m *memLockStore) Remove() error                { m.set = false; m.path = ""; return nil }

type memRegistry struct {
	paths []string
}

func (m *memRegistry) List() ([]string, error) { return append([]string(nil), m.paths...), nil }

func (m *memRegistry) Add(path string) error {
	for _, p := range m.paths {
		if p == path {
			return nil
		}
	}
	m.paths = append(m.paths, path)
	return nil
}

func (m *memRegistry) Remove(path string) error {
	var kept []string
	for _, p := range m.paths {
		if p != path {
			kept = append(kept, p)
		}
	}
	m.paths = kept
	return nil
}

func newTestSession() (*Session, *memLockStore, *memRegistry) {
	lock := &memLockStore{}
	reg := &memRegistry{}
	return NewWithStores(lock, reg), lock, reg
}

func TestMarkOpenAndClosed(t *testing.T) {
	s, _, _ := newTestSession()
	dir := t.TempDir()
	path := filepath.Join(dir, "a.db")
	os.WriteFile(path, []byte("x"), 0600)

	state, _, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if state != Closed {
		t.Fatalf("initial state = %v; want Closed", state)
	}

	if err := s.MarkOpen(path); err != nil {
		t.Fatalf("MarkOpen: %v", err)
	}

	state, gotPath, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if state != Open || gotPath != path {
		t.Fatalf("Status() = %v, %q; want Open, %q", state, gotPath, path)
	}

	if err := s.MarkClosed(); err != nil {
		t.Fatalf("MarkClosed: %v", err)
	}
	state, _, err = s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if state != Closed {
		t.Fatalf("state after MarkClosed = %v; want Closed", state)
	}
}

func TestMarkOpenRejectsSecondSession(t *testing.T) {
	s, _, _ := newTestSession()
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.db")
	pathB := filepath.Join(dir, "b.db")
	os.WriteFile(pathA, []byte("x"), 0600)
	os.WriteFile(pathB, []byte("x"), 0600)

	if err := s.MarkOpen(pathA); err != nil {
		t.Fatalf("MarkOpen(a): %v", err)
	}

	err := s.MarkOpen(pathB)
	var aoe *steelerr.AlreadyOpenError
	if !errors.As(err, &aoe) {
		t.Fatalf("MarkOpen(b) while a is open: got %v, want AlreadyOpenError", err)
	}
	if aoe.Path != pathA {
		t.Errorf("AlreadyOpenError.Path = %q; want %q", aoe.Path, pathA)
	}

	// b.db must be untouched by the rejected open.
	if _, err := os.Stat(pathB); err != nil {
		t.Errorf("b.db should be untouched: %v", err)
	}
}

func TestListStatusReportsAndPrunesStaleEntries(t *testing.T) {
	s, lock, reg := newTestSession()
	dir := t.TempDir()
	alive := filepath.Join(dir, "alive.db")
	gone := filepath.Join(dir, "gone.db")
	os.WriteFile(alive, []byte("x"), 0600)

	reg.paths = []string{alive, gone}
	lock.path, lock.set = gone, true

	entries, err := s.ListStatus()
	if err != nil {
		t.Fatalf("ListStatus: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("ListStatus() returned %d entries; want 2", len(entries))
	}
	for _, e := range entries {
		if e.Path == gone && !e.Stale {
			t.Error("gone.db should be reported stale")
		}
		if e.Path == alive && e.Stale {
			t.Error("alive.db should not be reported stale")
		}
	}

	remaining, _ := reg.List()
	if len(remaining) != 1 || remaining[0] != alive {
		t.Errorf("registry after ListStatus = %v; want only %q", remaining, alive)
	}

	// The stale lock itself must also have been cleared.
	state, _, err := s.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if state != Closed {
		t.Error("stale lock should be cleared by ListStatus, allowing a fresh open")
	}

	other := filepath.Join(dir, "other.db")
	os.WriteFile(other, []byte("x"), 0600)
	if err := s.MarkOpen(other); err != nil {
		t.Fatalf("MarkOpen after stale-lock cleanup: %v", err)
	}
}

func TestTrackUntrack(t *testing.T) {
	s, _, reg := newTestSession()
	path := "/tmp/a.db"

	if err := s.Track(path); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := s.Track(path); err != nil {
		t.Fatalf("Track (duplicate): %v", err)
	}
	if len(reg.paths) != 1 {
		t.Errorf("Track twice should not duplicate entries, got %v", reg.paths)
	}

	if err := s.Untrack(path); err != nil {
		t.Fatalf("Untrack: %v", err)
	}
	if len(reg.paths) != 0 {
		t.Errorf("Untrack should remove the entry, got %v", reg.paths)
	}
}
