// Package store implements the plaintext record catalogue Container
// encrypts and decrypts: a small relational table of credential rows,
// backed by an embedded SQLite file so schema, indexing and transactional
// commit are inherited rather than reinvented.
package store

import (
	"strings"

	"github.com/byteptr/steel/internal/steelerr"
)

// MaxFieldLen bounds each text field to keep a maliciously large record
// from exhausting memory when loaded whole; the fields are unbounded in
// principle, this is the documented policy cap.
const MaxFieldLen = 64 * 1024

// Record is one credential entry. Equality is on ID; Title, User,
// Passphrase, URL and Notes are free-form UTF-8 text.
type Record struct {
	ID         int
	Title      string
	User       string
	Passphrase string
	URL        string
	Notes      string
}

// Validate reports whether every text field is within MaxFieldLen bytes.
func (r Record) Validate() error {
	fields := map[string]string{
		"title":      r.Title,
		"user":       r.User,
		"passphrase": r.Passphrase,
		"url":        r.URL,
		"notes":      r.Notes,
	}
	for name, v := range fields {
		if len(v) > MaxFieldLen {
			return steelerr.InvalidArgument(name + " exceeds maximum field length")
		}
	}
	return nil
}

// Field looks up one of the showable text fields by name, for the
// show-field operation. Field names outside this set (e.g. "title" or
// "id") are rejected, matching §6.5's field ∈ {passphrase, user, url,
// notes}.
func (r Record) Field(name string) (string, error) {
	switch name {
	case "passphrase":
		return r.Passphrase, nil
	case "user":
		return r.User, nil
	case "url":
		return r.URL, nil
	case "notes":
		return r.Notes, nil
	default:
		return "", steelerr.InvalidArgument("unknown field: " + name)
	}
}

// matches reports whether substr occurs, case-insensitively, in any of the
// fields find() searches: title, user, url, notes — never passphrase.
func (r Record) matches(substrLower string) bool {
	for _, f := range []string{r.Title, r.User, r.URL, r.Notes} {
		if strings.Contains(strings.ToLower(f), substrLower) {
			return true
		}
	}
	return false
}
