// Package fsops collects the small set of filesystem primitives the
// container, session and registry packages share: existence checks,
// write-to-temp-then-rename, and best-effort secure removal. Every mutation
// that touches a file another process might observe goes through here so
// the rename-is-the-linearization-point discipline lives in one place.
package fsops

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Exists reports whether a regular file exists at path. It does not
// distinguish "absent" from "present but inaccessible" beyond what os.Stat
// reports; callers needing that distinction should inspect the error
// directly.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// TempSibling returns a path in the same directory as target, suitable for
// write-then-rename. Using the same directory guarantees the final rename
// is on one filesystem and therefore atomic.
func TempSibling(target, suffix string) string {
	return target + suffix
}

// ReplaceWithTemp renames tempPath over target, removing target first if it
// exists. This is the linearization point of every encrypt, decrypt,
// session-lock write and registry rewrite in this repo; init and the
// registry's append-only Add write their files directly.
func ReplaceWithTemp(target, tempPath string) error {
	if Exists(target) {
		if err := os.Remove(target); err != nil {
			return fmt.Errorf("remove %s: %w", target, err)
		}
	}
	if err := os.Rename(tempPath, target); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tempPath, target, err)
	}
	return nil
}

// RemoveIfExists removes path, treating "already absent" as success. Used
// to clean up temp files left behind by a failed or killed operation.
func RemoveIfExists(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SecureErase overwrites a file's contents with zeros before removing it.
// Used by the remove-database operation to shred a database file; like
// crypto.SecureZero, this cannot defeat a determined forensic recovery,
// but it avoids leaving the old contents recoverable from the file's
// blocks.
func SecureErase(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}

	size := info.Size()
	zeros := make([]byte, 64*1024)
	var written int64
	for written < size {
		n := int64(len(zeros))
		if size-written < n {
			n = size - written
		}
		if _, err := f.Write(zeros[:n]); err != nil {
			f.Close()
			return err
		}
		written += n
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}

// CopyFile copies src to dst byte-for-byte. It fails if dst already exists,
// mirroring the backup operation's "never overwrite" guard.
func CopyFile(src, dst string) error {
	if Exists(dst) {
		return fmt.Errorf("%s already exists", dst)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// HomeFile joins the current user's home directory with name, the pattern
// the session lock and tracking registry both use for their well-known
// paths under $HOME.
func HomeFile(name string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve $HOME: %w", err)
	}
	return filepath.Join(home, name), nil
}
