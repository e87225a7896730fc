package crypto

import (
	"crypto/subtle"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// MACSize is the output size of the container's authentication tag.
const MACSize = 32

// NewMAC returns a keyed BLAKE2b-256 hash for authenticating container
// ciphertext. The key is the same 32-byte key used to derive the cipher
// stream; the container is encrypt-then-MAC, so Write is always called
// with ciphertext bytes, never plaintext.
func NewMAC(key []byte) (hash.Hash, error) {
	return blake2b.New(MACSize, key)
}

// VerifyMAC reports whether two MAC tags are equal, in constant time.
func VerifyMAC(expected, actual []byte) bool {
	return subtle.ConstantTimeCompare(expected, actual) == 1
}
