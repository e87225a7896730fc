package container

import "github.com/byteptr/steel/internal/crypto"

// operationContext bundles the key material derived for a single Encrypt
// or Decrypt call. Callers must defer Close() immediately after creating
// one so the derived key and the passphrase bytes it was built from don't
// outlive the operation in memory.
type operationContext struct {
	crypto.CryptoContext
}

func newOperationContext(passphrase []byte) *operationContext {
	passCopy := make([]byte, len(passphrase))
	copy(passCopy, passphrase)
	return &operationContext{crypto.CryptoContext{Passphrase: passCopy}}
}

// Close zeros the derived key and passphrase copy. Safe to call more than
// once.
func (c *operationContext) Close() {
	c.CryptoContext.Close()
}
