// Package steel is the public library surface: every operation named in
// the catalogue's design is a method on Steel, and the CLI in cmd/steel is
// a thin wrapper that does nothing a library caller could not do itself.
package steel

import (
	"github.com/byteptr/steel/internal/container"
	"github.com/byteptr/steel/internal/fsops"
	"github.com/byteptr/steel/internal/log"
	"github.com/byteptr/steel/internal/passgen"
	"github.com/byteptr/steel/internal/session"
	"github.com/byteptr/steel/internal/steelerr"
	"github.com/byteptr/steel/internal/store"
	"github.com/byteptr/steel/internal/strength"
)

// Record is re-exported so callers never need to import internal/store
// directly.
type Record = store.Record

// StatusEntry is re-exported from internal/session for ListStatus callers.
type StatusEntry = session.StatusEntry

// Steel is the single entry point into the library. It holds no database
// handle itself — the open database, if any, is opened and closed around
// each record operation — only the session state that says which path, if
// any, is currently decrypted on disk.
type Steel struct {
	session *session.Session
}

// New builds a Steel backed by the real $HOME/.steel_open session lock
// and $HOME/.steel_dbs tracking registry.
func New() (*Steel, error) {
	s, err := session.New()
	if err != nil {
		return nil, err
	}
	return &Steel{session: s}, nil
}

// newWithSession is used by tests to inject an in-memory session.
func newWithSession(s *session.Session) *Steel {
	return &Steel{session: s}
}

// withLock runs fn under the session's OS-level advisory lock, when the
// session is backed by a real file; an in-memory test session runs fn
// directly. This hardens Open and Close against two processes racing the
// same database — a single serial caller never observes it.
func (s *Steel) withLock(fn func() error) error {
	path, ok := s.session.LockFilePath()
	if !ok {
		return fn()
	}
	return fsops.WithExclusiveLock(path, fn)
}

// Init creates a brand-new, empty, unencrypted catalogue at path and adds
// it to the tracking registry. It does not open a session: Open marks the
// plaintext catalogue open, and the first Close after that is what
// encrypts it for the first time.
func (s *Steel) Init(path string) error {
	st, err := store.Create(path)
	if err != nil {
		return err
	}
	if err := st.Close(); err != nil {
		return steelerr.Io("close new catalogue", err)
	}
	if err := s.session.Track(path); err != nil {
		return err
	}
	log.Info("catalogue initialized", log.String("path", path))
	return nil
}

// Open decrypts the container at path under passphrase and marks the
// session open. It refuses if a session is already open, and leaves path
// untouched if the passphrase is wrong or the container has been
// tampered with. A file that is not a container, such as the plaintext
// catalogue Init leaves behind, is marked open as it is; no passphrase is
// checked for it.
func (s *Steel) Open(path, passphrase string) error {
	err := s.withLock(func() error {
		state, lockedPath, err := s.session.Status()
		if err != nil {
			return err
		}
		if state == session.Open {
			return &steelerr.AlreadyOpenError{Path: lockedPath}
		}
		encrypted, err := container.IsContainer(path)
		if err != nil {
			return steelerr.Io("open: probe", err)
		}
		if encrypted {
			if err := container.Decrypt(path, []byte(passphrase)); err != nil {
				return err
			}
		} else if !fsops.Exists(path) {
			return steelerr.NotFound(path)
		}
		return s.session.MarkOpen(path)
	})
	if err != nil {
		log.Warn("open failed", log.String("path", path), log.Err(err))
		return err
	}
	log.Info("database opened", log.String("path", path))
	return nil
}

// Close re-encrypts the currently open database under passphrase and
// clears the session. The returned strength.Result is advisory only: a
// weak passphrase still closes the database.
func (s *Steel) Close(passphrase string) (strength.Result, error) {
	var result strength.Result
	err := s.withLock(func() error {
		state, path, err := s.session.Status()
		if err != nil {
			return err
		}
		if state != session.Open {
			return steelerr.ErrDatabaseNotOpen
		}
		if err := container.Encrypt(path, []byte(passphrase)); err != nil {
			return err
		}
		result = strength.Check(passphrase)
		return s.session.MarkClosed()
	})
	if err != nil {
		log.Warn("close failed", log.Err(err))
		return strength.Result{}, err
	}
	log.Info("database closed", log.String("strength", result.Score.String()))
	return result, nil
}

// requireOpen returns the path of the currently open database, or
// ErrDatabaseNotOpen if none is.
func (s *Steel) requireOpen() (string, error) {
	state, path, err := s.session.Status()
	if err != nil {
		return "", err
	}
	if state != session.Open {
		return "", steelerr.ErrDatabaseNotOpen
	}
	return path, nil
}

// withStore opens the currently open database's catalogue file, runs fn
// against it, and closes it again — every record operation is a single
// open/use/close cycle rather than a long-lived handle.
func (s *Steel) withStore(fn func(*store.Store) error) error {
	path, err := s.requireOpen()
	if err != nil {
		return err
	}
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return fn(st)
}

// Add inserts rec into the open database and returns its newly assigned id.
func (s *Steel) Add(rec Record) (int, error) {
	var id int
	err := s.withStore(func(st *store.Store) error {
		newID, err := st.Add(rec)
		if err != nil {
			return err
		}
		id = newID
		return nil
	})
	return id, err
}

// Get returns the record named by id from the open database.
func (s *Steel) Get(id int) (Record, error) {
	var rec Record
	err := s.withStore(func(st *store.Store) error {
		got, err := st.Get(id)
		if err != nil {
			return err
		}
		rec = got
		return nil
	})
	return rec, err
}

// Update replaces the record named by id with rec's fields.
func (s *Steel) Update(id int, rec Record) error {
	return s.withStore(func(st *store.Store) error {
		return st.Update(id, rec)
	})
}

// Delete removes the record named by id from the open database.
func (s *Steel) Delete(id int) error {
	return s.withStore(func(st *store.Store) error {
		return st.Delete(id)
	})
}

// List returns every record in the open database, ordered by id.
func (s *Steel) List() ([]Record, error) {
	var out []Record
	err := s.withStore(func(st *store.Store) error {
		recs, err := st.List()
		if err != nil {
			return err
		}
		out = recs
		return nil
	})
	return out, err
}

// Find returns every record in the open database whose title, user, url
// or notes contains substr, case-insensitively.
func (s *Steel) Find(substr string) ([]Record, error) {
	var out []Record
	err := s.withStore(func(st *store.Store) error {
		recs, err := st.Find(substr)
		if err != nil {
			return err
		}
		out = recs
		return nil
	})
	return out, err
}

// ShowField returns a single field of the record named by id, restricted
// to the fields a record reveals on demand rather than on every listing.
func (s *Steel) ShowField(id int, field string) (string, error) {
	var out string
	err := s.withStore(func(st *store.Store) error {
		rec, err := st.Get(id)
		if err != nil {
			return err
		}
		val, err := rec.Field(field)
		if err != nil {
			return err
		}
		out = val
		return nil
	})
	return out, err
}

// Generate returns a new passphrase of length characters, drawn uniformly
// from the fixed alphanumeric alphabet.
func (s *Steel) Generate(length int) (string, error) {
	return passgen.Generate(length)
}

// CheckStrength scores passphrase advisorily, the same way Close does
// internally, for callers that want to preview a candidate master
// passphrase before committing to it.
func (s *Steel) CheckStrength(passphrase string) strength.Result {
	return strength.Check(passphrase)
}

// Backup copies the encrypted container at src to dst. It refuses to run
// against a currently-decrypted (plaintext) src, mirroring the original
// backup tool's refusal to export an open database, and refuses to
// overwrite an existing dst.
func (s *Steel) Backup(src, dst string) error {
	if !fsops.Exists(src) {
		return steelerr.NotFound(src)
	}
	if fsops.Exists(dst) {
		return steelerr.AlreadyExists(dst)
	}
	ok, err := container.IsContainer(src)
	if err != nil {
		return steelerr.Io("backup probe", err)
	}
	if !ok {
		return steelerr.ErrNotEncrypted
	}
	if err := fsops.CopyFile(src, dst); err != nil {
		return steelerr.Io("backup copy", err)
	}
	log.Info("database backed up", log.String("src", src), log.String("dst", dst))
	return nil
}

// ListStatus returns every tracked database path with its staleness,
// pruning stale entries (and a stale session lock, if any) as a side
// effect.
func (s *Steel) ListStatus() ([]StatusEntry, error) {
	return s.session.ListStatus()
}

// RemoveDatabase shreds the file at path — overwriting its contents before
// removal, per spec.md §3's "destroyed by delete(id) or by shredding the
// database" — and stops tracking it. It refuses to shred the database the
// current session has open, since that would destroy a file this process
// still believes is live; close it first.
func (s *Steel) RemoveDatabase(path string) error {
	state, openPath, err := s.session.Status()
	if err != nil {
		return err
	}
	if state == session.Open && openPath == path {
		return &steelerr.AlreadyOpenError{Path: openPath}
	}

	if fsops.Exists(path) {
		if err := fsops.SecureErase(path); err != nil {
			return steelerr.Io("shred database", err)
		}
		log.Info("database shredded", log.String("path", path))
	}

	return s.session.Untrack(path)
}
