// This file contains memory zeroing utilities for secure cleanup of sensitive data.

package crypto

import (
	"crypto/subtle"
	"hash"
)

// SecureZero overwrites b with zeros. Uses subtle.ConstantTimeCopy rather
// than a plain loop so the compiler cannot prove the write is dead and
// eliminate it.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// SecureZeroMultiple zeros multiple byte slices in a single call.
// Useful for cleaning up multiple related keys or buffers.
func SecureZeroMultiple(slices ...[]byte) {
	for _, s := range slices {
		SecureZero(s)
	}
}

// SecureZeroHash resets a hash.Hash state to prevent partial hash data
// from remaining in memory. Note: not all Hash implementations may fully
// clear their internal state on Reset().
func SecureZeroHash(h hash.Hash) {
	if h != nil {
		h.Reset()
	}
}

// KeyMaterial wraps sensitive key data with automatic zeroing on Close().
type KeyMaterial struct {
	data   []byte
	closed bool
}

// NewKeyMaterial creates a new KeyMaterial wrapper.
// The data is copied to prevent modification of the original slice.
func NewKeyMaterial(data []byte) *KeyMaterial {
	if data == nil {
		return &KeyMaterial{}
	}
	// Make a copy to own the data
	copied := make([]byte, len(data))
	copy(copied, data)
	return &KeyMaterial{data: copied}
}

// Bytes returns the underlying key data.
// Returns nil if the KeyMaterial has been closed.
func (km *KeyMaterial) Bytes() []byte {
	if km.closed {
		return nil
	}
	return km.data
}

// Len returns the length of the key data.
func (km *KeyMaterial) Len() int {
	if km.closed || km.data == nil {
		return 0
	}
	return len(km.data)
}

// Close securely zeros the key data and marks it as closed.
// This method is idempotent - multiple calls are safe.
func (km *KeyMaterial) Close() {
	if km.closed || km.data == nil {
		return
	}
	SecureZero(km.data)
	km.data = nil
	km.closed = true
}

// IsClosed returns whether the KeyMaterial has been closed.
func (km *KeyMaterial) IsClosed() bool {
	return km.closed
}

// CryptoContext holds the sensitive material derived for a single open or
// close of a container: the Argon2id key (used for both the cipher stream
// and the MAC, per the on-disk format) and the raw passphrase bytes, kept
// only long enough to compute the bcrypt verifier and the key.
// Use Close() to securely zero all materials when done.
type CryptoContext struct {
	Key        []byte
	Passphrase []byte
	closed     bool
}

// Close securely zeros all cryptographic materials.
// This should be called via defer immediately after creating the context.
func (cc *CryptoContext) Close() {
	if cc.closed {
		return
	}
	SecureZeroMultiple(cc.Key, cc.Passphrase)
	cc.Key = nil
	cc.Passphrase = nil
	cc.closed = true
}
