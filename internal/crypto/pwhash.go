package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var errUnexpectedVerifierLen = errors.New("bcrypt produced an unexpected verifier length")

// BcryptCost is the fixed work factor for the passphrase verifier. Raising
// it invalidates no existing container, since the verifier is recomputed
// only when a passphrase is set, but it does change how long every future
// close takes, and every open of a container written after the change.
const BcryptCost = 12

// VerifierLen is the textual width of a bcrypt hash produced with this
// package's cost range; the container format stores exactly this many bytes.
const VerifierLen = 60

// Hash returns a bcrypt verifier for password. It is stored in the
// container header and checked on open, before any key derivation or
// decryption is attempted.
func Hash(password []byte) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(password, BcryptCost)
	if err != nil {
		return "", err
	}
	if len(hash) != VerifierLen {
		return "", errUnexpectedVerifierLen
	}
	return string(hash), nil
}

// VerifyPassphrase reports whether password matches the stored bcrypt
// verifier. A non-nil error means the passphrase is wrong or the verifier
// is malformed; either way the caller must not proceed to decrypt.
func VerifyPassphrase(verifier string, password []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(verifier), password)
}
