// Package crypto provides the cryptographic primitives Steel's container
// format is built from: random generation, passphrase hashing, key
// derivation, symmetric encryption and keyed authentication.
package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// RandomBytes generates n cryptographically secure random bytes, used for
// the container's IV field.
func RandomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("fatal crypto/rand error: %w", err)
	}

	allZero := true
	for _, v := range b {
		if v != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, errors.New("fatal crypto/rand error: produced zero bytes")
	}

	return b, nil
}
