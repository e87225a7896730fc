package crypto

import (
	"bytes"
	"errors"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for the key used to drive the container's cipher and
// MAC. Deliberately lighter than a volume-cipher KDF tuned for large
// payloads: Steel derives a key on every open and close of a small SQLite
// file, not once per gigabyte of data.
const (
	ArgonTime    = 1
	ArgonMemory  = 64 * 1024 // KiB, i.e. 64 MiB
	ArgonThreads = 4
	KeySize      = 32
)

// DeriveKey derives the container key from the passphrase and salt using
// Argon2id. Parameters must never change, or existing containers become
// undecryptable.
func DeriveKey(passphrase, salt []byte) ([]byte, error) {
	key := argon2.IDKey(passphrase, salt, ArgonTime, ArgonMemory, ArgonThreads, KeySize)

	if bytes.Equal(key, make([]byte, KeySize)) {
		return nil, errors.New("fatal argon2 error: produced zero key")
	}

	return key, nil
}
