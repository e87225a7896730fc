package session

import (
	"os"
	"strings"

	"github.com/byteptr/steel/internal/fsops"
)

// LockStore persists the single-path session lock. The design note calls
// for the persistence layer to sit behind a small interface so tests can
// substitute an in-memory implementation instead of touching $HOME.
type LockStore interface {
	// Read returns the locked path and true, or "" and false if no lock
	// is currently held.
	Read() (path string, ok bool, err error)
	Write(path string) error
	Remove() error
}

// fileLockStore is the real LockStore, backed by $HOME/.steel_open.
type fileLockStore struct {
	path string
}

// NewFileLockStore builds the default LockStore at $HOME/.steel_open,
// grounded in the original implementation's get_lockfile_path/
// create_lockfile/remove_lockfile trio.
func NewFileLockStore() (LockStore, error) {
	path, err := fsops.HomeFile(".steel_open")
	if err != nil {
		return nil, err
	}
	return &fileLockStore{path: path}, nil
}

func (l *fileLockStore) Read() (string, bool, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	path := strings.TrimRight(string(data), "\n")
	if path == "" {
		return "", false, nil
	}
	return path, true, nil
}

func (l *fileLockStore) Write(path string) error {
	temp := fsops.TempSibling(l.path, ".tmp")
	if err := os.WriteFile(temp, []byte(path+"\n"), 0600); err != nil {
		return err
	}
	return fsops.ReplaceWithTemp(l.path, temp)
}

func (l *fileLockStore) Remove() error {
	return fsops.RemoveIfExists(l.path)
}
